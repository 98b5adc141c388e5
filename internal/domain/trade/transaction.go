package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionLine is one product sold within a transaction.
// UnitPrice is the product price captured at sale time.
type TransactionLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      int64           `gorm:"not null;check:chk_transaction_line_quantity,quantity > 0"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionLine) TableName() string {
	return "transaction_lines"
}

// Transaction is an immutable sale record against a merchant's stock
type Transaction struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	MerchantID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_transaction_merchant_created,priority:1"`
	CustomerName  string            `gorm:"type:varchar(200);not null"`
	CustomerPhone string            `gorm:"type:varchar(50);not null"`
	SubTotal      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TaxTotal      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal    decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt     time.Time         `gorm:"not null;index:idx_transaction_merchant_created,priority:2"`
	Lines         []TransactionLine `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction starts a transaction for a merchant's customer
func NewTransaction(merchantID uuid.UUID, customerName, customerPhone string) (*Transaction, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "merchant_id", "Merchant ID cannot be empty")
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewFieldError("INVALID_INPUT", "name", "Customer name cannot be empty")
	}
	if len(customerName) > 200 {
		return nil, shared.NewFieldError("INVALID_INPUT", "name", "Customer name cannot exceed 200 characters")
	}
	customerPhone = strings.TrimSpace(customerPhone)
	if customerPhone == "" {
		return nil, shared.NewFieldError("INVALID_INPUT", "phone", "Customer phone cannot be empty")
	}
	if len(customerPhone) > 50 {
		return nil, shared.NewFieldError("INVALID_INPUT", "phone", "Customer phone cannot exceed 50 characters")
	}

	return &Transaction{
		ID:            uuid.New(),
		MerchantID:    merchantID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		SubTotal:      decimal.Zero,
		TaxTotal:      decimal.Zero,
		GrandTotal:    decimal.Zero,
		CreatedAt:     time.Now(),
		Lines:         make([]TransactionLine, 0),
	}, nil
}

// AddLine appends a sold product at the given unit price and updates the sub total
func (t *Transaction) AddLine(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*TransactionLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "product_id", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity.WithField("quantity").WithMessage("Quantity must be a positive whole number")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewFieldError("INVALID_INPUT", "price", "Unit price cannot be negative")
	}

	line := TransactionLine{
		ID:            uuid.New(),
		TransactionID: t.ID,
		ProductID:     productID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		SubTotal:      unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:     t.CreatedAt,
	}
	t.Lines = append(t.Lines, line)
	t.recalculateSubTotal()

	return &t.Lines[len(t.Lines)-1], nil
}

// ApplyTax sets the tax and grand totals from the current sub total
func (t *Transaction) ApplyTax(policy TaxPolicy) {
	t.recalculateSubTotal()
	tax := decimal.Zero
	if policy != nil {
		tax = policy.Compute(t.SubTotal)
	}
	t.TaxTotal = tax
	t.GrandTotal = t.SubTotal.Add(tax)
}

// TotalQuantity returns the number of units sold across lines
func (t *Transaction) TotalQuantity() int64 {
	var total int64
	for _, line := range t.Lines {
		total += line.Quantity
	}
	return total
}

// Validate checks the transaction totals are consistent with its lines
func (t *Transaction) Validate() error {
	if len(t.Lines) == 0 {
		return shared.NewFieldError("INVALID_INPUT", "products", "Transaction must contain at least one product")
	}
	sum := decimal.Zero
	for _, line := range t.Lines {
		sum = sum.Add(line.SubTotal)
	}
	if !sum.Equal(t.SubTotal) {
		return shared.NewDomainError("INVALID_STATE", "Transaction sub total does not match its lines")
	}
	if !t.SubTotal.Add(t.TaxTotal).Equal(t.GrandTotal) {
		return shared.NewDomainError("INVALID_STATE", "Transaction grand total does not match sub total plus tax")
	}
	return nil
}

func (t *Transaction) recalculateSubTotal() {
	sum := decimal.Zero
	for _, line := range t.Lines {
		sum = sum.Add(line.SubTotal)
	}
	t.SubTotal = sum
}
