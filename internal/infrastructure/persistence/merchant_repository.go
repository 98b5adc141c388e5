package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormMerchantRepository implements MerchantRepository using GORM
type GormMerchantRepository struct {
	db *gorm.DB
}

// NewGormMerchantRepository creates a new GormMerchantRepository
func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

// FindByID finds a merchant by its ID
func (r *GormMerchantRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Merchant, error) {
	var merchant partner.Merchant
	if err := r.db.WithContext(ctx).First(&merchant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// FindByKeeper finds the merchant run by a user. A keeper with several
// merchants gets the oldest one.
func (r *GormMerchantRepository) FindByKeeper(ctx context.Context, keeperID uuid.UUID) (*partner.Merchant, error) {
	var merchant partner.Merchant
	if err := r.db.WithContext(ctx).
		Where("keeper_id = ?", keeperID).
		Order("created_at ASC").
		First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// FindAll finds all merchants matching the filter
func (r *GormMerchantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Merchant, error) {
	var merchants []partner.Merchant
	query := paginate(r.db.WithContext(ctx).Model(&partner.Merchant{}), filter, MerchantSortFields)
	if err := query.Find(&merchants).Error; err != nil {
		return nil, err
	}
	return merchants, nil
}

// Count counts all merchants
func (r *GormMerchantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Merchant{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks whether a merchant exists
func (r *GormMerchantRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Merchant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a merchant
func (r *GormMerchantRepository) Save(ctx context.Context, merchant *partner.Merchant) error {
	return r.db.WithContext(ctx).Save(merchant).Error
}

// Delete removes a merchant unless it holds stock or has recorded sales
func (r *GormMerchantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteUnreferenced(ctx, r.db, &partner.Merchant{}, id,
		r.db.Model(&inventory.MerchantStock{}).Select("1").Where("merchant_id = ?", id),
		r.db.Model(&trade.Transaction{}).Select("1").Where("merchant_id = ?", id),
	)
}

// Ensure GormMerchantRepository implements MerchantRepository
var _ partner.MerchantRepository = (*GormMerchantRepository)(nil)
