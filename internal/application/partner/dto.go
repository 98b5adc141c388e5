package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
)

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=50"`
}

// CreateMerchantRequest represents a request to create a merchant
type CreateMerchantRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=200"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone" binding:"max=50"`
	KeeperID uuid.UUID `json:"keeper_id" binding:"required"`
}

// UpdateWarehouseRequest replaces a warehouse's contact information
type UpdateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UpdateMerchantRequest replaces a merchant's contact information.
// KeeperID, when set, hands the merchant to another keeper.
type UpdateMerchantRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone" binding:"max=50"`
	KeeperID *uuid.UUID `json:"keeper_id"`
}

// ListFilter represents pagination options for partner lists
type ListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MerchantResponse represents a merchant in API responses
type MerchantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Photo     string    `json:"photo,omitempty"`
	KeeperID  uuid.UUID `json:"keeper_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a domain Warehouse to a response
func ToWarehouseResponse(w *partner.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Phone:     w.Phone,
		Photo:     w.Photo,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToMerchantResponse converts a domain Merchant to a response
func ToMerchantResponse(m *partner.Merchant) MerchantResponse {
	return MerchantResponse{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		Photo:     m.Photo,
		KeeperID:  m.KeeperID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toFilter(f ListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	return filter
}
