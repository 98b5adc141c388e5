package inventory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type warehouseServiceFixture struct {
	ledger         *MockLedger
	warehouses     *MockWarehouseRepository
	products       *MockProductRepository
	warehouseStock *MockWarehouseStockRepository
	metrics        *recordingMetrics
	service        *WarehouseProductService
}

func newWarehouseServiceFixture() *warehouseServiceFixture {
	f := &warehouseServiceFixture{
		ledger:         new(MockLedger),
		warehouses:     new(MockWarehouseRepository),
		products:       new(MockProductRepository),
		warehouseStock: new(MockWarehouseStockRepository),
		metrics:        &recordingMetrics{},
	}
	scope := NewNoOpTransactionScope(NoOpRepositories{
		Ledger:         f.ledger,
		WarehouseStock: f.warehouseStock,
		Products:       f.products,
	})
	f.service = NewWarehouseProductService(f.warehouses, f.products, f.warehouseStock, scope, zap.NewNop())
	f.service.SetMetrics(f.metrics)
	return f
}

func (f *warehouseServiceFixture) known(warehouseID, productID uuid.UUID) {
	f.warehouses.On("ExistsByID", mock.Anything, warehouseID).Return(true, nil)
	f.products.On("ExistsByID", mock.Anything, productID).Return(true, nil)
}

func TestWarehouseProductService_Attach(t *testing.T) {
	t.Run("creates a new row", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID, productID := uuid.New(), uuid.New()
		f.known(warehouseID, productID)
		f.warehouseStock.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(s *inventory.WarehouseStock) bool {
			return s.WarehouseID == warehouseID && s.ProductID == productID && s.Quantity == 100
		})).Return(true, nil)

		result, err := f.service.Attach(context.Background(), warehouseID, productID, 100)
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, int64(100), result.Stock.Stock)
		f.ledger.AssertNotCalled(t, "GetStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("tops up an existing row", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID, productID := uuid.New(), uuid.New()
		f.known(warehouseID, productID)
		existing, _ := inventory.NewWarehouseStock(warehouseID, productID, 60)

		f.warehouseStock.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
		f.ledger.On("GetStock", mock.Anything, inventory.LocationWarehouse, warehouseID, productID).Return(int64(40), nil)
		f.ledger.On("SetStock", mock.Anything, inventory.LocationWarehouse, warehouseID, productID, int64(60)).Return(nil)
		f.warehouseStock.On("FindByWarehouseAndProduct", mock.Anything, warehouseID, productID).Return(existing, nil)

		result, err := f.service.Attach(context.Background(), warehouseID, productID, 20)
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, int64(60), result.Stock.Stock)
		f.ledger.AssertExpectations(t)
	})

	t.Run("top up overflow", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID, productID := uuid.New(), uuid.New()
		f.known(warehouseID, productID)
		f.warehouseStock.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
		f.ledger.On("GetStock", mock.Anything, inventory.LocationWarehouse, warehouseID, productID).Return(int64(math.MaxInt64-1), nil)

		_, err := f.service.Attach(context.Background(), warehouseID, productID, 2)
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
		f.ledger.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative stock", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		_, err := f.service.Attach(context.Background(), uuid.New(), uuid.New(), -1)
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
	})

	t.Run("unknown warehouse", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID := uuid.New()
		f.warehouses.On("ExistsByID", mock.Anything, warehouseID).Return(false, nil)

		_, err := f.service.Attach(context.Background(), warehouseID, uuid.New(), 1)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, "warehouse_id", domainErr.Field)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID, productID := uuid.New(), uuid.New()
		f.warehouses.On("ExistsByID", mock.Anything, warehouseID).Return(true, nil)
		f.products.On("ExistsByID", mock.Anything, productID).Return(false, nil)

		_, err := f.service.Attach(context.Background(), warehouseID, productID, 1)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "product_id", domainErr.Field)
		f.warehouseStock.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	})
}

func TestWarehouseProductService_UpdateStock(t *testing.T) {
	t.Run("overwrites the quantity", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID, productID := uuid.New(), uuid.New()
		updated, _ := inventory.NewWarehouseStock(warehouseID, productID, 7)

		f.ledger.On("GetStock", mock.Anything, inventory.LocationWarehouse, warehouseID, productID).Return(int64(100), nil)
		f.ledger.On("SetStock", mock.Anything, inventory.LocationWarehouse, warehouseID, productID, int64(7)).Return(nil)
		f.warehouseStock.On("FindByWarehouseAndProduct", mock.Anything, warehouseID, productID).Return(updated, nil)

		resp, err := f.service.UpdateStock(context.Background(), warehouseID, productID, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.Stock)
	})

	t.Run("missing row", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID, productID := uuid.New(), uuid.New()
		f.ledger.On("GetStock", mock.Anything, inventory.LocationWarehouse, warehouseID, productID).Return(int64(0), shared.ErrNotFound)

		_, err := f.service.UpdateStock(context.Background(), warehouseID, productID, 7)
		assert.True(t, errors.Is(err, inventory.ErrWarehouseNotAssigned))
		assert.Equal(t, []string{"warehouse_update_stock:NOT_ASSIGNED"}, f.metrics.rejections)
	})

	t.Run("negative quantity", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		_, err := f.service.UpdateStock(context.Background(), uuid.New(), uuid.New(), -3)
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
		f.ledger.AssertNotCalled(t, "GetStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWarehouseProductService_Detach(t *testing.T) {
	f := newWarehouseServiceFixture()
	warehouseID, productID := uuid.New(), uuid.New()
	f.warehouseStock.On("Delete", mock.Anything, warehouseID, productID).Return(nil)

	require.NoError(t, f.service.Detach(context.Background(), warehouseID, productID))
	f.warehouseStock.AssertExpectations(t)
}

func TestWarehouseProductService_ListProducts(t *testing.T) {
	t.Run("unknown warehouse", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID := uuid.New()
		f.warehouses.On("ExistsByID", mock.Anything, warehouseID).Return(false, nil)

		_, err := f.service.ListProducts(context.Background(), warehouseID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("returns rows", func(t *testing.T) {
		f := newWarehouseServiceFixture()
		warehouseID := uuid.New()
		row, _ := inventory.NewWarehouseStock(warehouseID, uuid.New(), 12)
		f.warehouses.On("ExistsByID", mock.Anything, warehouseID).Return(true, nil)
		f.warehouseStock.On("FindByWarehouse", mock.Anything, warehouseID).Return([]inventory.WarehouseStock{*row}, nil)

		rows, err := f.service.ListProducts(context.Background(), warehouseID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(12), rows[0].Stock)
	})
}
