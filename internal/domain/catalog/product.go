package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// Transactions copy the price at sale time, so later price changes never
// rewrite history.
type Product struct {
	shared.BaseEntity
	Name       string          `gorm:"type:varchar(200);not null"`
	About      string          `gorm:"type:text"`
	Thumbnail  string          `gorm:"type:varchar(500)"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	IsPopular  bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
	}, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice changes the current list price
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory links the product to a category; nil clears it
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetDetails updates descriptive fields
func (p *Product) SetDetails(about, thumbnail string, popular bool) {
	p.About = about
	p.Thumbnail = thumbnail
	p.IsPopular = popular
	p.UpdatedAt = time.Now()
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", "name", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewFieldError("INVALID_INPUT", "price", "Price cannot be negative")
	}
	return nil
}
