package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err comes from a unique index.
// gorm.ErrDuplicatedKey is only produced when TranslateError is enabled,
// so driver messages are checked as well.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// deleteUnreferenced deletes the row of model with the given id unless one
// of the guards still selects a referencing row. Guards run inside the
// DELETE statement, so a reference committed first wins.
func deleteUnreferenced(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, guards ...*gorm.DB) error {
	query := db.WithContext(ctx).Where("id = ?", id)
	for _, guard := range guards {
		query = query.Where("NOT EXISTS (?)", guard)
	}
	result := query.Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrInUse
}
