package catalog

import (
	"strings"
	"time"

	"github.com/saturday/backend/internal/domain/shared"
)

// Category groups products for browsing. Categories are flat.
type Category struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(100);not null"`
	Tagline string `gorm:"type:varchar(255)"`
	Photo   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, tagline string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	tagline = strings.TrimSpace(tagline)
	if err := validateTagline(tagline); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Tagline:    tagline,
	}, nil
}

// Update updates the category's name and tagline
func (c *Category) Update(name, tagline string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	tagline = strings.TrimSpace(tagline)
	if err := validateTagline(tagline); err != nil {
		return err
	}

	c.Name = name
	c.Tagline = tagline
	c.UpdatedAt = time.Now()
	return nil
}

// SetPhoto records the storage reference of the category photo
func (c *Category) SetPhoto(ref string) {
	c.Photo = ref
	c.UpdatedAt = time.Now()
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", "name", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateTagline(tagline string) error {
	if len(tagline) > 255 {
		return shared.NewFieldError("INVALID_INPUT", "tagline", "Tagline cannot exceed 255 characters")
	}
	return nil
}
