package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
)

// WarehouseStockResponse represents a warehouse ledger row in API responses
type WarehouseStockResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MerchantStockResponse represents a merchant ledger row in API responses
type MerchantStockResponse struct {
	ID          uuid.UUID `json:"id"`
	MerchantID  uuid.UUID `json:"merchant_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AttachResult is the outcome of attaching a product to a warehouse.
// Created is false when an existing row was topped up.
type AttachResult struct {
	Stock   WarehouseStockResponse
	Created bool
}

// TransferResult describes a merchant stock update and the warehouse
// movement it caused
type TransferResult struct {
	Stock             MerchantStockResponse `json:"stock"`
	Direction         string                `json:"direction"`
	Moved             int64                 `json:"moved"`
	WarehouseQuantity int64                 `json:"warehouse_stock"`
}

// AssignProductInput carries the fields needed to assign a product to a merchant
type AssignProductInput struct {
	MerchantID  uuid.UUID
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Stock       int64
}

// UpdateMerchantStockInput carries a target merchant quantity and the
// warehouse that absorbs the difference
type UpdateMerchantStockInput struct {
	MerchantID  uuid.UUID
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Stock       int64
}

// ToWarehouseStockResponse converts a domain WarehouseStock to a response
func ToWarehouseStockResponse(s *inventory.WarehouseStock) WarehouseStockResponse {
	return WarehouseStockResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		ProductID:   s.ProductID,
		Stock:       s.Quantity,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToWarehouseStockResponses converts a slice of WarehouseStock
func ToWarehouseStockResponses(rows []inventory.WarehouseStock) []WarehouseStockResponse {
	responses := make([]WarehouseStockResponse, len(rows))
	for i := range rows {
		responses[i] = ToWarehouseStockResponse(&rows[i])
	}
	return responses
}

// ToMerchantStockResponse converts a domain MerchantStock to a response
func ToMerchantStockResponse(s *inventory.MerchantStock) MerchantStockResponse {
	return MerchantStockResponse{
		ID:          s.ID,
		MerchantID:  s.MerchantID,
		ProductID:   s.ProductID,
		WarehouseID: s.SourceWarehouseID,
		Stock:       s.Quantity,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToMerchantStockResponses converts a slice of MerchantStock
func ToMerchantStockResponses(rows []inventory.MerchantStock) []MerchantStockResponse {
	responses := make([]MerchantStockResponse, len(rows))
	for i := range rows {
		responses[i] = ToMerchantStockResponse(&rows[i])
	}
	return responses
}
