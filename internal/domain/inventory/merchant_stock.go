package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// MerchantStock is the ledger row holding a product's quantity at a merchant.
// SourceWarehouseID records the warehouse the stock was first pulled from.
type MerchantStock struct {
	shared.BaseEntity
	MerchantID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_merchant_stock_pair,priority:1"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_merchant_stock_pair,priority:2;index"`
	Quantity          int64     `gorm:"not null;default:0;check:chk_merchant_stock_quantity,quantity >= 0"`
	SourceWarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (MerchantStock) TableName() string {
	return "merchant_stock"
}

// NewMerchantStock creates a ledger row for a merchant-product pair sourced
// from a warehouse
func NewMerchantStock(merchantID, productID, sourceWarehouseID uuid.UUID, quantity int64) (*MerchantStock, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "merchant_id", "Merchant ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "product_id", "Product ID cannot be empty")
	}
	if sourceWarehouseID == uuid.Nil {
		return nil, ErrMissingWarehouse
	}
	if err := ValidateQuantity("stock", quantity); err != nil {
		return nil, err
	}

	return &MerchantStock{
		BaseEntity:        shared.NewBaseEntity(),
		MerchantID:        merchantID,
		ProductID:         productID,
		Quantity:          quantity,
		SourceWarehouseID: sourceWarehouseID,
	}, nil
}

// CanFulfill reports whether the row covers a sale of the given quantity
func (s *MerchantStock) CanFulfill(quantity int64) bool {
	return quantity >= 0 && s.Quantity >= quantity
}

// Sell removes sold units from the row
func (s *MerchantStock) Sell(quantity int64) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity.WithField("quantity")
	}
	if !s.CanFulfill(quantity) {
		return NewInsufficientStockError(s.ProductID, s.Quantity, quantity)
	}
	s.Quantity -= quantity
	s.UpdatedAt = time.Now()
	return nil
}
