package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// WarehouseStock is the ledger row holding a product's quantity at a warehouse.
// The pair (WarehouseID, ProductID) is unique.
type WarehouseStock struct {
	shared.BaseEntity
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:1"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:2;index"`
	Quantity    int64     `gorm:"not null;default:0;check:chk_warehouse_stock_quantity,quantity >= 0"`
}

// TableName returns the table name for GORM
func (WarehouseStock) TableName() string {
	return "warehouse_stock"
}

// NewWarehouseStock creates a ledger row for a warehouse-product pair
func NewWarehouseStock(warehouseID, productID uuid.UUID, quantity int64) (*WarehouseStock, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "warehouse_id", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "product_id", "Product ID cannot be empty")
	}
	if err := ValidateQuantity("stock", quantity); err != nil {
		return nil, err
	}

	return &WarehouseStock{
		BaseEntity:  shared.NewBaseEntity(),
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    quantity,
	}, nil
}

// CanSupply reports whether the row covers the requested quantity
func (s *WarehouseStock) CanSupply(quantity int64) bool {
	return quantity >= 0 && s.Quantity >= quantity
}

// TopUp adds stock to the row, as a repeated attach does
func (s *WarehouseStock) TopUp(quantity int64) error {
	if err := ValidateQuantity("stock", quantity); err != nil {
		return err
	}
	s.Quantity += quantity
	s.UpdatedAt = time.Now()
	return nil
}

// Withdraw removes stock from the row
func (s *WarehouseStock) Withdraw(quantity int64) error {
	if err := ValidateQuantity("stock", quantity); err != nil {
		return err
	}
	if !s.CanSupply(quantity) {
		return ErrInsufficientWarehouseStock
	}
	s.Quantity -= quantity
	s.UpdatedAt = time.Now()
	return nil
}
