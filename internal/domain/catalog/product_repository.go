package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts all products
	Count(ctx context.Context) (int64, error)

	// ExistsByID checks whether a product exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product that is neither stocked nor sold.
	// Returns shared.ErrNotFound or shared.ErrInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}
