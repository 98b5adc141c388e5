package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMerchantStockRepository implements MerchantStockRepository using GORM
type GormMerchantStockRepository struct {
	db *gorm.DB
}

// NewGormMerchantStockRepository creates a new GormMerchantStockRepository
func NewGormMerchantStockRepository(db *gorm.DB) *GormMerchantStockRepository {
	return &GormMerchantStockRepository{db: db}
}

// FindByMerchantAndProduct finds the row for a merchant-product pair
func (r *GormMerchantStockRepository) FindByMerchantAndProduct(ctx context.Context, merchantID, productID uuid.UUID) (*inventory.MerchantStock, error) {
	return r.find(r.db.WithContext(ctx), merchantID, productID)
}

// FindForUpdate finds the row for a pair and holds a row lock until the
// surrounding transaction ends
func (r *GormMerchantStockRepository) FindForUpdate(ctx context.Context, merchantID, productID uuid.UUID) (*inventory.MerchantStock, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), merchantID, productID)
}

func (r *GormMerchantStockRepository) find(query *gorm.DB, merchantID, productID uuid.UUID) (*inventory.MerchantStock, error) {
	var stock inventory.MerchantStock
	if err := query.
		Where("merchant_id = ? AND product_id = ?", merchantID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByMerchant lists all rows of a merchant, oldest first
func (r *GormMerchantStockRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]inventory.MerchantStock, error) {
	var rows []inventory.MerchantStock
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsByMerchantAndProduct checks whether the pair has a row
func (r *GormMerchantStockRepository) ExistsByMerchantAndProduct(ctx context.Context, merchantID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.MerchantStock{}).
		Where("merchant_id = ? AND product_id = ?", merchantID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new row. The unique pair index turns a concurrent
// duplicate into ErrAlreadyAssigned.
func (r *GormMerchantStockRepository) Create(ctx context.Context, stock *inventory.MerchantStock) error {
	if err := r.db.WithContext(ctx).Create(stock).Error; err != nil {
		if isUniqueViolation(err) {
			return inventory.ErrAlreadyAssigned
		}
		return err
	}
	return nil
}

// Delete removes the row for a pair
func (r *GormMerchantStockRepository) Delete(ctx context.Context, merchantID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("merchant_id = ? AND product_id = ?", merchantID, productID).
		Delete(&inventory.MerchantStock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMerchantStockRepository implements MerchantStockRepository
var _ inventory.MerchantStockRepository = (*GormMerchantStockRepository)(nil)
