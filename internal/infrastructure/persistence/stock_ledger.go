package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockLedger implements inventory.Ledger over the warehouse_stock and
// merchant_stock tables. Bound to a transaction handle, its reads lock the
// rows they return until commit or rollback.
type GormStockLedger struct {
	db             *gorm.DB
	warehouseStock *GormWarehouseStockRepository
	merchantStock  *GormMerchantStockRepository
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{
		db:             db,
		warehouseStock: NewGormWarehouseStockRepository(db),
		merchantStock:  NewGormMerchantStockRepository(db),
	}
}

// GetStock returns the locked quantity of a (location, product) row
func (l *GormStockLedger) GetStock(ctx context.Context, kind inventory.LocationKind, locationID, productID uuid.UUID) (int64, error) {
	switch kind {
	case inventory.LocationWarehouse:
		row, err := l.warehouseStock.FindForUpdate(ctx, locationID, productID)
		if err != nil {
			return 0, err
		}
		return row.Quantity, nil
	case inventory.LocationMerchant:
		row, err := l.merchantStock.FindForUpdate(ctx, locationID, productID)
		if err != nil {
			return 0, err
		}
		return row.Quantity, nil
	default:
		return 0, kind.Validate()
	}
}

// SetStock overwrites the quantity of an existing row
func (l *GormStockLedger) SetStock(ctx context.Context, kind inventory.LocationKind, locationID, productID uuid.UUID, quantity int64) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if err := inventory.ValidateQuantity("stock", quantity); err != nil {
		return err
	}

	var (
		model          any
		locationColumn string
	)
	if kind == inventory.LocationWarehouse {
		model, locationColumn = &inventory.WarehouseStock{}, "warehouse_id"
	} else {
		model, locationColumn = &inventory.MerchantStock{}, "merchant_id"
	}

	result := l.db.WithContext(ctx).
		Model(model).
		Where(locationColumn+" = ? AND product_id = ?", locationID, productID).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockLedger implements Ledger
var _ inventory.Ledger = (*GormStockLedger)(nil)
