package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Ledger is the point read/write accessor over warehouse and merchant stock.
// Implementations bound to a transaction make several calls commit or roll
// back together.
type Ledger interface {
	// GetStock returns the quantity of a (location, product) row, locking it
	// for the rest of the transaction. Returns shared.ErrNotFound if absent
	GetStock(ctx context.Context, kind LocationKind, locationID, productID uuid.UUID) (int64, error)

	// SetStock overwrites the quantity of an existing row.
	// Returns shared.ErrNotFound if absent and ErrInvalidQuantity if negative
	SetStock(ctx context.Context, kind LocationKind, locationID, productID uuid.UUID, quantity int64) error
}

// WarehouseStockRepository defines persistence for warehouse ledger rows
type WarehouseStockRepository interface {
	// FindByWarehouseAndProduct finds the row for a pair without locking it
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseStock, error)

	// FindForUpdate finds the row for a pair and locks it (SELECT ... FOR UPDATE)
	FindForUpdate(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseStock, error)

	// FindByWarehouse lists all rows of a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseStock, error)

	// CreateIfAbsent inserts the row unless the pair exists.
	// Returns true when a row was inserted
	CreateIfAbsent(ctx context.Context, stock *WarehouseStock) (bool, error)

	// Delete removes the row for a pair. Deleting a missing pair is not an error
	Delete(ctx context.Context, warehouseID, productID uuid.UUID) error
}

// MerchantStockRepository defines persistence for merchant ledger rows
type MerchantStockRepository interface {
	// FindByMerchantAndProduct finds the row for a pair without locking it
	FindByMerchantAndProduct(ctx context.Context, merchantID, productID uuid.UUID) (*MerchantStock, error)

	// FindForUpdate finds the row for a pair and locks it (SELECT ... FOR UPDATE)
	FindForUpdate(ctx context.Context, merchantID, productID uuid.UUID) (*MerchantStock, error)

	// FindByMerchant lists all rows of a merchant
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]MerchantStock, error)

	// ExistsByMerchantAndProduct checks whether the pair has a row
	ExistsByMerchantAndProduct(ctx context.Context, merchantID, productID uuid.UUID) (bool, error)

	// Create inserts a new row. A duplicate pair yields ErrAlreadyAssigned
	Create(ctx context.Context, stock *MerchantStock) error

	// Delete removes the row for a pair. Returns shared.ErrNotFound if absent
	Delete(ctx context.Context, merchantID, productID uuid.UUID) error
}
