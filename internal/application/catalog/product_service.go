package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	product.SetDetails(req.About, req.Thumbnail, req.IsPopular)
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("price", product.Price.String()),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List lists products with pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	listFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		listFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		listFilter.PageSize = filter.PageSize
	}

	products, err := s.productRepo.FindAll(ctx, listFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update replaces a product's catalog fields. Past sales keep the price
// they were recorded at.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := product.UpdatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	product.SetDetails(req.About, req.Thumbnail, req.IsPopular)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("product_id", id.String()),
		zap.String("price", product.Price.String()),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product that no ledger holds and no sale recorded
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInUse) {
			return catalog.ErrProductInUse
		}
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	exists, err := s.categoryRepo.ExistsByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return catalog.ErrCategoryNotFound
	}
	return nil
}
