package catalog

import "github.com/saturday/backend/internal/domain/shared"

var (
	// ErrCategoryNotFound is returned when a product refers to a category
	// that does not exist.
	ErrCategoryNotFound = shared.NewFieldError("CATEGORY_NOT_FOUND", "category_id", "Category is not found.")

	ErrCategoryInUse = shared.ErrInUse.WithMessage("Cannot delete category with associated products")
	ErrProductInUse  = shared.ErrInUse.WithMessage("Cannot delete product that is stocked or has been sold")
)
