package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockLedger is a mock implementation of inventory.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetStock(ctx context.Context, kind inventory.LocationKind, locationID, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, locationID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) SetStock(ctx context.Context, kind inventory.LocationKind, locationID, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, kind, locationID, productID, quantity)
	return args.Error(0)
}

// MockWarehouseStockRepository is a mock implementation of WarehouseStockRepository
type MockWarehouseStockRepository struct {
	mock.Mock
}

func (m *MockWarehouseStockRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	args := m.Called(ctx, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.WarehouseStock), args.Error(1)
}

func (m *MockWarehouseStockRepository) FindForUpdate(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	args := m.Called(ctx, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.WarehouseStock), args.Error(1)
}

func (m *MockWarehouseStockRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]inventory.WarehouseStock), args.Error(1)
}

func (m *MockWarehouseStockRepository) CreateIfAbsent(ctx context.Context, stock *inventory.WarehouseStock) (bool, error) {
	args := m.Called(ctx, stock)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseStockRepository) Delete(ctx context.Context, warehouseID, productID uuid.UUID) error {
	args := m.Called(ctx, warehouseID, productID)
	return args.Error(0)
}

// MockMerchantStockRepository is a mock implementation of MerchantStockRepository
type MockMerchantStockRepository struct {
	mock.Mock
}

func (m *MockMerchantStockRepository) FindByMerchantAndProduct(ctx context.Context, merchantID, productID uuid.UUID) (*inventory.MerchantStock, error) {
	args := m.Called(ctx, merchantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.MerchantStock), args.Error(1)
}

func (m *MockMerchantStockRepository) FindForUpdate(ctx context.Context, merchantID, productID uuid.UUID) (*inventory.MerchantStock, error) {
	args := m.Called(ctx, merchantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.MerchantStock), args.Error(1)
}

func (m *MockMerchantStockRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]inventory.MerchantStock, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]inventory.MerchantStock), args.Error(1)
}

func (m *MockMerchantStockRepository) ExistsByMerchantAndProduct(ctx context.Context, merchantID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, merchantID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMerchantStockRepository) Create(ctx context.Context, stock *inventory.MerchantStock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockMerchantStockRepository) Delete(ctx context.Context, merchantID, productID uuid.UUID) error {
	args := m.Called(ctx, merchantID, productID)
	return args.Error(0)
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *partner.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMerchantRepository is a mock implementation of MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) FindByKeeper(ctx context.Context, keeperID uuid.UUID) (*partner.Merchant, error) {
	args := m.Called(ctx, keeperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Merchant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMerchantRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMerchantRepository) Save(ctx context.Context, merchant *partner.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingMetrics captures recorder calls for assertions
type recordingMetrics struct {
	mu         sync.Mutex
	transfers  []string
	moved      int64
	rejections []string
}

func (r *recordingMetrics) RecordTransfer(_ context.Context, direction string, qty int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers = append(r.transfers, direction)
	r.moved += qty
}

func (r *recordingMetrics) RecordRejection(_ context.Context, operation, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, operation+":"+code)
}
