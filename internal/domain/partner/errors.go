package partner

import "github.com/saturday/backend/internal/domain/shared"

// ErrMerchantNotFound is returned by merchant-scoped stock operations when
// the merchant itself does not exist. It is a business rule failure (422),
// unlike a plain resource lookup miss.
var ErrMerchantNotFound = shared.NewFieldError("MERCHANT_NOT_FOUND", "merchant_id", "Merchant is not found.")

// Delete refusals. Ledger rows cascade with their owner, so owners that
// still hold stock are kept.
var (
	ErrWarehouseInUse = shared.ErrInUse.WithMessage("Cannot delete warehouse that holds stock or receives merchant returns")
	ErrMerchantInUse  = shared.ErrInUse.WithMessage("Cannot delete merchant that holds stock or has recorded sales")
)
