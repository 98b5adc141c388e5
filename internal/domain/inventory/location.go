package inventory

import "github.com/saturday/backend/internal/domain/shared"

// LocationKind identifies which ledger a stock row lives in
type LocationKind string

const (
	LocationWarehouse LocationKind = "warehouse"
	LocationMerchant  LocationKind = "merchant"
)

// String returns the kind name
func (k LocationKind) String() string {
	return string(k)
}

// Validate rejects kinds other than warehouse and merchant
func (k LocationKind) Validate() error {
	switch k {
	case LocationWarehouse, LocationMerchant:
		return nil
	default:
		return shared.NewFieldError("INVALID_INPUT", "location_kind", "Unknown location kind: "+string(k))
	}
}
