package trade

import (
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxPolicy derives the tax owed on a transaction sub total
type TaxPolicy interface {
	Compute(subTotal decimal.Decimal) decimal.Decimal
}

// PercentageTaxPolicy charges a flat rate on the sub total, rounded to
// two decimal places
type PercentageTaxPolicy struct {
	rate decimal.Decimal
}

// NewPercentageTaxPolicy creates a policy for a rate between 0 and 1
func NewPercentageTaxPolicy(rate decimal.Decimal) (*PercentageTaxPolicy, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewFieldError("INVALID_INPUT", "tax_rate", "Tax rate must be between 0 and 1")
	}
	return &PercentageTaxPolicy{rate: rate}, nil
}

// Rate returns the configured rate
func (p *PercentageTaxPolicy) Rate() decimal.Decimal {
	return p.rate
}

// Compute implements TaxPolicy
func (p *PercentageTaxPolicy) Compute(subTotal decimal.Decimal) decimal.Decimal {
	return subTotal.Mul(p.rate).Round(2)
}

// NoTax is a TaxPolicy that never charges tax
type NoTax struct{}

// Compute implements TaxPolicy
func (NoTax) Compute(decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}
