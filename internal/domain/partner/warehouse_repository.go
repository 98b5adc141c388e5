package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindAll finds all warehouses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)

	// Count counts all warehouses
	Count(ctx context.Context) (int64, error)

	// ExistsByID checks whether a warehouse exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, warehouse *Warehouse) error

	// Delete removes a warehouse that holds no stock and is not the
	// return target of any merchant stock.
	// Returns shared.ErrNotFound or shared.ErrInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MerchantRepository defines the interface for merchant persistence
type MerchantRepository interface {
	// FindByID finds a merchant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Merchant, error)

	// FindByKeeper finds the merchant run by the given user
	FindByKeeper(ctx context.Context, keeperID uuid.UUID) (*Merchant, error)

	// FindAll finds all merchants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Merchant, error)

	// Count counts all merchants
	Count(ctx context.Context) (int64, error)

	// ExistsByID checks whether a merchant exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a merchant
	Save(ctx context.Context, merchant *Merchant) error

	// Delete removes a merchant with no stock and no recorded sales.
	// Returns shared.ErrNotFound or shared.ErrInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}
