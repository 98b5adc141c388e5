package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents a sale against a merchant's stock
type CreateTransactionRequest struct {
	MerchantID uuid.UUID                 `json:"merchant_id" binding:"required"`
	Name       string                    `json:"name" binding:"required,min=1,max=200"`
	Phone      string                    `json:"phone" binding:"required,min=1,max=50"`
	Products   []TransactionProductInput `json:"products" binding:"required,dive"`
}

// TransactionProductInput represents one product line of a sale.
// Quantity is validated by the service so non-positive values surface as
// INVALID_QUANTITY instead of a binding failure.
type TransactionProductInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity"`
}

// TransactionListFilter represents pagination options for transaction lists
type TransactionListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TransactionLineResponse represents a sold product in API responses
type TransactionLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

// TransactionResponse represents a sale in API responses
type TransactionResponse struct {
	ID         uuid.UUID                 `json:"id"`
	MerchantID uuid.UUID                 `json:"merchant_id"`
	Name       string                    `json:"name"`
	Phone      string                    `json:"phone"`
	SubTotal   decimal.Decimal           `json:"sub_total"`
	TaxTotal   decimal.Decimal           `json:"tax_total"`
	GrandTotal decimal.Decimal           `json:"grand_total"`
	Products   []TransactionLineResponse `json:"products"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// ToTransactionResponse converts a domain Transaction to a response
func ToTransactionResponse(t *trade.Transaction) TransactionResponse {
	lines := make([]TransactionLineResponse, len(t.Lines))
	for i, line := range t.Lines {
		lines[i] = TransactionLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			SubTotal:  line.SubTotal,
		}
	}
	return TransactionResponse{
		ID:         t.ID,
		MerchantID: t.MerchantID,
		Name:       t.CustomerName,
		Phone:      t.CustomerPhone,
		SubTotal:   t.SubTotal,
		TaxTotal:   t.TaxTotal,
		GrandTotal: t.GrandTotal,
		Products:   lines,
		CreatedAt:  t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of Transaction
func ToTransactionResponses(transactions []trade.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
