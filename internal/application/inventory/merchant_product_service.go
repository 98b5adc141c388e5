package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MerchantProductService manages the products a merchant sells and the
// stock it pulls from warehouses
type MerchantProductService struct {
	merchantRepo partner.MerchantRepository
	stockRepo    inventory.MerchantStockRepository
	txScope      TransactionScope
	engine       *TransferEngine
	metrics      MetricsRecorder
	logger       *zap.Logger
}

// NewMerchantProductService creates a new MerchantProductService
func NewMerchantProductService(
	merchantRepo partner.MerchantRepository,
	stockRepo inventory.MerchantStockRepository,
	txScope TransactionScope,
	engine *TransferEngine,
	logger *zap.Logger,
) *MerchantProductService {
	return &MerchantProductService{
		merchantRepo: merchantRepo,
		stockRepo:    stockRepo,
		txScope:      txScope,
		engine:       engine,
		metrics:      nopMetrics{},
		logger:       logger,
	}
}

// SetMetrics sets the recorder for stock measurements
func (s *MerchantProductService) SetMetrics(metrics MetricsRecorder) {
	if metrics != nil {
		s.metrics = metrics
	}
}

// Assign gives a merchant a product, moving the requested stock out of the
// source warehouse
func (s *MerchantProductService) Assign(ctx context.Context, input AssignProductInput) (*MerchantStockResponse, error) {
	if err := inventory.ValidateQuantity("stock", input.Stock); err != nil {
		return nil, err
	}
	if input.WarehouseID == uuid.Nil {
		return nil, inventory.ErrMissingWarehouse
	}

	var row *inventory.MerchantStock
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.MerchantRepo().ExistsByID(ctx, input.MerchantID)
		if err != nil {
			return err
		}
		if !exists {
			return partner.ErrMerchantNotFound
		}

		ledger := repos.Ledger()
		available, err := ledger.GetStock(ctx, inventory.LocationWarehouse, input.WarehouseID, input.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.ErrInsufficientWarehouseStock
			}
			return err
		}
		if available < input.Stock {
			return inventory.ErrInsufficientWarehouseStock
		}

		assigned, err := repos.MerchantStockRepo().ExistsByMerchantAndProduct(ctx, input.MerchantID, input.ProductID)
		if err != nil {
			return err
		}
		if assigned {
			return inventory.ErrAlreadyAssigned
		}

		if err := ledger.SetStock(ctx, inventory.LocationWarehouse, input.WarehouseID, input.ProductID, available-input.Stock); err != nil {
			return err
		}

		row, err = inventory.NewMerchantStock(input.MerchantID, input.ProductID, input.WarehouseID, input.Stock)
		if err != nil {
			return err
		}
		return repos.MerchantStockRepo().Create(ctx, row)
	})
	if err != nil {
		recordRejection(ctx, s.metrics, "merchant_assign", err)
		return nil, err
	}

	if input.Stock > 0 {
		s.metrics.RecordTransfer(ctx, inventory.TransferToMerchant.String(), input.Stock)
	}
	s.logger.Info("Product assigned to merchant",
		zap.String("merchant_id", input.MerchantID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.String("warehouse_id", input.WarehouseID.String()),
		zap.Int64("stock", input.Stock),
	)

	response := ToMerchantStockResponse(row)
	return &response, nil
}

// Remove takes a product away from a merchant. The remaining merchant
// stock is written off and not returned to any warehouse.
func (s *MerchantProductService) Remove(ctx context.Context, merchantID, productID uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.MerchantRepo().ExistsByID(ctx, merchantID)
		if err != nil {
			return err
		}
		if !exists {
			return partner.ErrMerchantNotFound
		}

		if err := repos.MerchantStockRepo().Delete(ctx, merchantID, productID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.ErrNotAssigned
			}
			return err
		}
		return nil
	})
	if err != nil {
		recordRejection(ctx, s.metrics, "merchant_remove", err)
		return err
	}

	s.logger.Info("Product removed from merchant",
		zap.String("merchant_id", merchantID.String()),
		zap.String("product_id", productID.String()),
	)
	return nil
}

// UpdateStock sets a merchant's stock of a product through the transfer engine
func (s *MerchantProductService) UpdateStock(ctx context.Context, input UpdateMerchantStockInput) (*TransferResult, error) {
	return s.engine.UpdateMerchantStock(ctx, input)
}

// ListProducts lists the stock rows of a merchant
func (s *MerchantProductService) ListProducts(ctx context.Context, merchantID uuid.UUID) ([]MerchantStockResponse, error) {
	if err := s.ensureMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	rows, err := s.stockRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return ToMerchantStockResponses(rows), nil
}

func (s *MerchantProductService) ensureMerchant(ctx context.Context, merchantID uuid.UUID) error {
	exists, err := s.merchantRepo.ExistsByID(ctx, merchantID)
	if err != nil {
		return err
	}
	if !exists {
		return partner.ErrMerchantNotFound
	}
	return nil
}
