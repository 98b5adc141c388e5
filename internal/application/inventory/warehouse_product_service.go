package inventory

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WarehouseProductService manages which products a warehouse stocks and in
// what quantity
type WarehouseProductService struct {
	warehouseRepo partner.WarehouseRepository
	productRepo   catalog.ProductRepository
	stockRepo     inventory.WarehouseStockRepository
	txScope       TransactionScope
	metrics       MetricsRecorder
	logger        *zap.Logger
}

// NewWarehouseProductService creates a new WarehouseProductService
func NewWarehouseProductService(
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
	stockRepo inventory.WarehouseStockRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *WarehouseProductService {
	return &WarehouseProductService{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		stockRepo:     stockRepo,
		txScope:       txScope,
		metrics:       nopMetrics{},
		logger:        logger,
	}
}

// SetMetrics sets the recorder for stock measurements
func (s *WarehouseProductService) SetMetrics(metrics MetricsRecorder) {
	if metrics != nil {
		s.metrics = metrics
	}
}

// Attach adds a product to a warehouse with an initial stock. Attaching a
// product the warehouse already holds adds initialStock to the existing row.
func (s *WarehouseProductService) Attach(ctx context.Context, warehouseID, productID uuid.UUID, initialStock int64) (*AttachResult, error) {
	if err := inventory.ValidateQuantity("stock", initialStock); err != nil {
		return nil, err
	}
	if err := s.ensureWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	exists, err := s.productRepo.ExistsByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound.WithField("product_id").WithMessage("Product not found")
	}

	row, err := inventory.NewWarehouseStock(warehouseID, productID, initialStock)
	if err != nil {
		return nil, err
	}

	var created bool
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		created, err = repos.WarehouseStockRepo().CreateIfAbsent(ctx, row)
		if err != nil {
			return err
		}
		if created {
			return nil
		}

		current, err := repos.Ledger().GetStock(ctx, inventory.LocationWarehouse, warehouseID, productID)
		if err != nil {
			return err
		}
		if initialStock > math.MaxInt64-current {
			return inventory.ErrWarehouseStockOverflow
		}
		if err := repos.Ledger().SetStock(ctx, inventory.LocationWarehouse, warehouseID, productID, current+initialStock); err != nil {
			return err
		}

		existing, err := repos.WarehouseStockRepo().FindByWarehouseAndProduct(ctx, warehouseID, productID)
		if err != nil {
			return err
		}
		row = existing
		return nil
	})
	if err != nil {
		recordRejection(ctx, s.metrics, "warehouse_attach", err)
		return nil, err
	}

	s.logger.Info("Product attached to warehouse",
		zap.String("warehouse_id", warehouseID.String()),
		zap.String("product_id", productID.String()),
		zap.Int64("added", initialStock),
		zap.Int64("stock", row.Quantity),
		zap.Bool("created", created),
	)

	return &AttachResult{Stock: ToWarehouseStockResponse(row), Created: created}, nil
}

// Detach removes a product from a warehouse. Detaching a product the
// warehouse does not hold succeeds without changes.
func (s *WarehouseProductService) Detach(ctx context.Context, warehouseID, productID uuid.UUID) error {
	if err := s.stockRepo.Delete(ctx, warehouseID, productID); err != nil {
		return err
	}
	s.logger.Info("Product detached from warehouse",
		zap.String("warehouse_id", warehouseID.String()),
		zap.String("product_id", productID.String()),
	)
	return nil
}

// UpdateStock overwrites the quantity a warehouse holds of a product
func (s *WarehouseProductService) UpdateStock(ctx context.Context, warehouseID, productID uuid.UUID, newQuantity int64) (*WarehouseStockResponse, error) {
	if err := inventory.ValidateQuantity("stock", newQuantity); err != nil {
		return nil, err
	}

	var row *inventory.WarehouseStock
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger := repos.Ledger()
		if _, err := ledger.GetStock(ctx, inventory.LocationWarehouse, warehouseID, productID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.ErrWarehouseNotAssigned
			}
			return err
		}
		if err := ledger.SetStock(ctx, inventory.LocationWarehouse, warehouseID, productID, newQuantity); err != nil {
			return err
		}

		var err error
		row, err = repos.WarehouseStockRepo().FindByWarehouseAndProduct(ctx, warehouseID, productID)
		return err
	})
	if err != nil {
		recordRejection(ctx, s.metrics, "warehouse_update_stock", err)
		return nil, err
	}

	s.logger.Info("Warehouse stock updated",
		zap.String("warehouse_id", warehouseID.String()),
		zap.String("product_id", productID.String()),
		zap.Int64("stock", newQuantity),
	)

	response := ToWarehouseStockResponse(row)
	return &response, nil
}

// ListProducts lists the stock rows of a warehouse
func (s *WarehouseProductService) ListProducts(ctx context.Context, warehouseID uuid.UUID) ([]WarehouseStockResponse, error) {
	if err := s.ensureWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	rows, err := s.stockRepo.FindByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return ToWarehouseStockResponses(rows), nil
}

func (s *WarehouseProductService) ensureWarehouse(ctx context.Context, warehouseID uuid.UUID) error {
	exists, err := s.warehouseRepo.ExistsByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound.WithField("warehouse_id").WithMessage("Warehouse not found")
	}
	return nil
}
