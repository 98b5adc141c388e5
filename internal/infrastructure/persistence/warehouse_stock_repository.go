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

// GormWarehouseStockRepository implements WarehouseStockRepository using GORM
type GormWarehouseStockRepository struct {
	db *gorm.DB
}

// NewGormWarehouseStockRepository creates a new GormWarehouseStockRepository
func NewGormWarehouseStockRepository(db *gorm.DB) *GormWarehouseStockRepository {
	return &GormWarehouseStockRepository{db: db}
}

// FindByWarehouseAndProduct finds the row for a warehouse-product pair
func (r *GormWarehouseStockRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	return r.find(r.db.WithContext(ctx), warehouseID, productID)
}

// FindForUpdate finds the row for a pair and holds a row lock until the
// surrounding transaction ends
func (r *GormWarehouseStockRepository) FindForUpdate(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), warehouseID, productID)
}

func (r *GormWarehouseStockRepository) find(query *gorm.DB, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	if err := query.
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByWarehouse lists all rows of a warehouse, oldest first
func (r *GormWarehouseStockRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	var rows []inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateIfAbsent inserts the row unless the pair already has one.
// Concurrent attaches of the same pair insert at most one row.
func (r *GormWarehouseStockRepository) CreateIfAbsent(ctx context.Context, stock *inventory.WarehouseStock) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(stock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the row for a pair; a missing pair is not an error
func (r *GormWarehouseStockRepository) Delete(ctx context.Context, warehouseID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Delete(&inventory.WarehouseStock{}).Error
}

// Ensure GormWarehouseStockRepository implements WarehouseStockRepository
var _ inventory.WarehouseStockRepository = (*GormWarehouseStockRepository)(nil)
