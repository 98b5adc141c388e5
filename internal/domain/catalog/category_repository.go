package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Count counts all categories
	Count(ctx context.Context) (int64, error)

	// ExistsByID checks whether a category exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete removes a category that no product refers to.
	// Returns shared.ErrNotFound or shared.ErrInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}
