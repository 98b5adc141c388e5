package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// Merchant is a point of sale run by a keeper. It holds stock pulled
// from warehouses and sells it through transactions.
type Merchant struct {
	shared.BaseEntity
	Name     string    `gorm:"type:varchar(200);not null"`
	Address  string    `gorm:"type:text"`
	Phone    string    `gorm:"type:varchar(50)"`
	Photo    string    `gorm:"type:varchar(500)"`
	KeeperID uuid.UUID `gorm:"type:uuid;not null;index:idx_merchant_keeper"`
}

// TableName returns the table name for GORM
func (Merchant) TableName() string {
	return "merchants"
}

// NewMerchant creates a new merchant owned by the given keeper
func NewMerchant(name, address, phone string, keeperID uuid.UUID) (*Merchant, error) {
	name = strings.TrimSpace(name)
	if err := validateName("name", name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if keeperID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "keeper_id", "Keeper ID cannot be empty")
	}

	return &Merchant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		Phone:      strings.TrimSpace(phone),
		KeeperID:   keeperID,
	}, nil
}

// Update updates the merchant's contact information
func (m *Merchant) Update(name, address, phone string) error {
	name = strings.TrimSpace(name)
	if err := validateName("name", name); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	m.Name = name
	m.Address = strings.TrimSpace(address)
	m.Phone = strings.TrimSpace(phone)
	m.UpdatedAt = time.Now()
	return nil
}

// AssignKeeper transfers ownership of the merchant to another user
func (m *Merchant) AssignKeeper(keeperID uuid.UUID) error {
	if keeperID == uuid.Nil {
		return shared.NewFieldError("INVALID_INPUT", "keeper_id", "Keeper ID cannot be empty")
	}
	m.KeeperID = keeperID
	m.UpdatedAt = time.Now()
	return nil
}

// IsKeptBy reports whether the user runs this merchant
func (m *Merchant) IsKeptBy(userID uuid.UUID) bool {
	return m.KeeperID == userID
}
