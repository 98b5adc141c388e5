package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	About      string          `json:"about" binding:"max=2000"`
	Thumbnail  string          `json:"thumbnail" binding:"max=500"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *uuid.UUID      `json:"category_id"`
	IsPopular  bool            `json:"is_popular"`
}

// UpdateProductRequest replaces a product's catalog fields. A nil
// CategoryID clears the category.
type UpdateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	About      string          `json:"about" binding:"max=2000"`
	Thumbnail  string          `json:"thumbnail" binding:"max=500"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *uuid.UUID      `json:"category_id"`
	IsPopular  bool            `json:"is_popular"`
}

// ProductListFilter represents pagination options for product lists
type ProductListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	About      string          `json:"about"`
	Thumbnail  string          `json:"thumbnail"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	IsPopular  bool            `json:"is_popular"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		About:      p.About,
		Thumbnail:  p.Thumbnail,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		IsPopular:  p.IsPopular,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Tagline string `json:"tagline" binding:"max=255"`
}

// UpdateCategoryRequest replaces a category's name and tagline
type UpdateCategoryRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Tagline string `json:"tagline" binding:"max=255"`
}

// CategoryListFilter represents pagination options for category lists
type CategoryListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Tagline:   c.Tagline,
		Photo:     c.Photo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
