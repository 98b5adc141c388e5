package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TransferEngine changes a merchant's stock of a product and moves the
// difference to or from a warehouse, keeping the combined quantity constant.
//
// Rows are locked warehouse first, merchant second. Every other operation
// touching both ledgers takes the locks in the same order.
type TransferEngine struct {
	txScope TransactionScope
	metrics MetricsRecorder
	logger  *zap.Logger
}

// NewTransferEngine creates a new TransferEngine
func NewTransferEngine(txScope TransactionScope, logger *zap.Logger) *TransferEngine {
	return &TransferEngine{
		txScope: txScope,
		metrics: nopMetrics{},
		logger:  logger,
	}
}

// SetMetrics sets the recorder for stock measurements
func (e *TransferEngine) SetMetrics(metrics MetricsRecorder) {
	if metrics != nil {
		e.metrics = metrics
	}
}

// UpdateMerchantStock sets the merchant quantity to input.Stock. An increase
// is pulled from input.WarehouseID, a decrease is returned to it.
func (e *TransferEngine) UpdateMerchantStock(ctx context.Context, input UpdateMerchantStockInput) (_ *TransferResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer_engine", "update_merchant_stock",
		telemetry.SpanAttrMerchantID, input.MerchantID,
		telemetry.SpanAttrProductID, input.ProductID,
		telemetry.SpanAttrWarehouseID, input.WarehouseID,
		telemetry.SpanAttrQuantity, input.Stock,
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if err := inventory.ValidateQuantity("stock", input.Stock); err != nil {
		return nil, err
	}

	var (
		plan      inventory.Transfer
		row       *inventory.MerchantStock
		warehouse int64
	)
	err = e.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		assigned, err := repos.MerchantStockRepo().ExistsByMerchantAndProduct(ctx, input.MerchantID, input.ProductID)
		if err != nil {
			return err
		}
		if !assigned {
			return inventory.ErrNotAssigned
		}
		if input.WarehouseID == uuid.Nil {
			return inventory.ErrMissingWarehouse
		}

		ledger := repos.Ledger()

		warehouseFound := true
		warehouse, err = ledger.GetStock(ctx, inventory.LocationWarehouse, input.WarehouseID, input.ProductID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			warehouseFound = false
		}

		current, err := ledger.GetStock(ctx, inventory.LocationMerchant, input.MerchantID, input.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.ErrNotAssigned
			}
			return err
		}

		plan, err = inventory.PlanTransfer(current, input.Stock)
		if err != nil {
			return err
		}

		switch plan.Direction {
		case inventory.TransferToMerchant:
			if !warehouseFound {
				return inventory.ErrInsufficientWarehouseStock
			}
		case inventory.TransferToWarehouse:
			if !warehouseFound {
				return inventory.ErrWarehouseProductNotFound
			}
		}

		if plan.Direction != inventory.TransferNone {
			warehouse, err = plan.WarehouseQuantityAfter(warehouse)
			if err != nil {
				return err
			}
			if err := ledger.SetStock(ctx, inventory.LocationWarehouse, input.WarehouseID, input.ProductID, warehouse); err != nil {
				return err
			}
		}
		if err := ledger.SetStock(ctx, inventory.LocationMerchant, input.MerchantID, input.ProductID, input.Stock); err != nil {
			return err
		}

		row, err = repos.MerchantStockRepo().FindByMerchantAndProduct(ctx, input.MerchantID, input.ProductID)
		return err
	})
	if err != nil {
		recordRejection(ctx, e.metrics, "merchant_update_stock", err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrDirection, plan.Direction.String())
	if plan.Direction != inventory.TransferNone {
		e.metrics.RecordTransfer(ctx, plan.Direction.String(), plan.Quantity)
	}
	e.logger.Info("Merchant stock updated",
		zap.String("merchant_id", input.MerchantID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.String("warehouse_id", input.WarehouseID.String()),
		zap.String("direction", plan.Direction.String()),
		zap.Int64("moved", plan.Quantity),
		zap.Int64("stock", input.Stock),
	)

	return &TransferResult{
		Stock:             ToMerchantStockResponse(row),
		Direction:         plan.Direction.String(),
		Moved:             plan.Quantity,
		WarehouseQuantity: warehouse,
	}, nil
}
