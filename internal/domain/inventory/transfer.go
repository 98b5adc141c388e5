package inventory

import "math"

// TransferDirection says which way stock moves between a merchant and its
// warehouse when the merchant quantity is changed
type TransferDirection int

const (
	// TransferNone leaves the warehouse untouched
	TransferNone TransferDirection = iota
	// TransferToMerchant pulls stock out of the warehouse
	TransferToMerchant
	// TransferToWarehouse returns stock to the warehouse
	TransferToWarehouse
)

// String returns a readable direction name for logs
func (d TransferDirection) String() string {
	switch d {
	case TransferToMerchant:
		return "to_merchant"
	case TransferToWarehouse:
		return "to_warehouse"
	default:
		return "none"
	}
}

// Transfer is the warehouse-side movement needed to bring a merchant from
// its current quantity to a target quantity
type Transfer struct {
	Direction TransferDirection
	Quantity  int64
}

// PlanTransfer computes the warehouse movement for a merchant stock change.
// The merchant gains exactly what the warehouse loses and vice versa.
func PlanTransfer(current, target int64) (Transfer, error) {
	if err := ValidateQuantity("stock", target); err != nil {
		return Transfer{}, err
	}
	switch {
	case target > current:
		return Transfer{Direction: TransferToMerchant, Quantity: target - current}, nil
	case target < current:
		return Transfer{Direction: TransferToWarehouse, Quantity: current - target}, nil
	default:
		return Transfer{Direction: TransferNone}, nil
	}
}

// WarehouseQuantityAfter applies the transfer to a warehouse quantity.
// It fails when a pull exceeds what the warehouse holds or a return
// would overflow the warehouse quantity.
func (t Transfer) WarehouseQuantityAfter(warehouseQuantity int64) (int64, error) {
	switch t.Direction {
	case TransferToMerchant:
		if warehouseQuantity < t.Quantity {
			return warehouseQuantity, ErrInsufficientWarehouseStock
		}
		return warehouseQuantity - t.Quantity, nil
	case TransferToWarehouse:
		if t.Quantity > math.MaxInt64-warehouseQuantity {
			return warehouseQuantity, ErrWarehouseStockOverflow
		}
		return warehouseQuantity + t.Quantity, nil
	default:
		return warehouseQuantity, nil
	}
}
