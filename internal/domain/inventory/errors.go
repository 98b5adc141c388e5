package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// Stock rule violations. All of them are raised before a ledger row is
// written, or abort the surrounding unit of work.
var (
	ErrAlreadyAssigned = shared.NewFieldError(
		"ALREADY_ASSIGNED", "product_id", "Product already exists in this merchant.")
	ErrNotAssigned = shared.NewFieldError(
		"NOT_ASSIGNED", "product_id", "Product not assigned to this merchant.")
	ErrWarehouseNotAssigned = ErrNotAssigned.WithMessage("Product not found for this warehouse")
	ErrProductNotAssigned   = shared.NewFieldError(
		"PRODUCT_NOT_ASSIGNED", "product_id", "Product is not available at this merchant.")
	ErrMissingWarehouse = shared.NewFieldError(
		"MISSING_WAREHOUSE", "warehouse_id", "Warehouse ID is required when updating stock.")
	ErrWarehouseProductNotFound = shared.NewFieldError(
		"WAREHOUSE_PRODUCT_NOT_FOUND", "warehouse_id", "Product not found in warehouse.")
	ErrInsufficientWarehouseStock = shared.NewFieldError(
		shared.ErrInsufficientStock.Code, "stock", "Insufficient stock in warehouse")
	ErrWarehouseStockOverflow = shared.NewFieldError(
		shared.ErrInvalidQuantity.Code, "stock", "Stock exceeds the maximum warehouse quantity")
)

// NewInsufficientStockError names the product whose stock cannot cover the
// requested quantity
func NewInsufficientStockError(productID uuid.UUID, available, requested int64) *shared.DomainError {
	return shared.NewFieldError(
		shared.ErrInsufficientStock.Code,
		"products."+productID.String()+".quantity",
		fmt.Sprintf("Insufficient stock for product %s: available %d, requested %d", productID, available, requested),
	)
}

// NewProductNotAssignedError names the product missing from the merchant
func NewProductNotAssignedError(productID uuid.UUID) *shared.DomainError {
	return shared.NewFieldError(
		ErrProductNotAssigned.Code,
		"products."+productID.String()+".product_id",
		fmt.Sprintf("Product %s is not available at this merchant.", productID),
	)
}

// ValidateQuantity rejects negative stock values
func ValidateQuantity(field string, quantity int64) error {
	if quantity < 0 {
		return shared.ErrInvalidQuantity.WithField(field)
	}
	return nil
}
