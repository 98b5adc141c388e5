package partner

import (
	"strings"
	"time"

	"github.com/saturday/backend/internal/domain/shared"
)

// Warehouse is a stock-holding location that supplies merchants
type Warehouse struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"type:varchar(50)"`
	Photo   string `gorm:"type:varchar(500)"` // storage reference, not managed here
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(name, address, phone string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	if err := validateName("name", name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		Phone:      strings.TrimSpace(phone),
	}, nil
}

// Update updates the warehouse's contact information
func (w *Warehouse) Update(name, address, phone string) error {
	name = strings.TrimSpace(name)
	if err := validateName("name", name); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	w.Name = name
	w.Address = strings.TrimSpace(address)
	w.Phone = strings.TrimSpace(phone)
	w.UpdatedAt = time.Now()
	return nil
}

// SetPhoto records the storage reference of the warehouse photo
func (w *Warehouse) SetPhoto(ref string) {
	w.Photo = ref
	w.UpdatedAt = time.Now()
}

func validateName(field, name string) error {
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", field, "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewFieldError("INVALID_INPUT", field, "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewFieldError("INVALID_INPUT", "phone", "Phone cannot exceed 50 characters")
	}
	return nil
}
