package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory SQLite database with the full schema.
// A single connection serializes transactions the way row locks would.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, persistence.AutoMigrate(db), "Failed to migrate sqlite schema")
	return db
}

// SeedWarehouse inserts a warehouse.
func SeedWarehouse(t *testing.T, db *gorm.DB, name string) *partner.Warehouse {
	t.Helper()
	w, err := partner.NewWarehouse(name, "Jl. Gudang 1", "0800")
	require.NoError(t, err)
	require.NoError(t, db.Create(w).Error)
	return w
}

// SeedMerchant inserts a merchant run by the given keeper.
func SeedMerchant(t *testing.T, db *gorm.DB, name string, keeperID uuid.UUID) *partner.Merchant {
	t.Helper()
	m, err := partner.NewMerchant(name, "Jl. Toko 2", "0811", keeperID)
	require.NoError(t, err)
	require.NoError(t, db.Create(m).Error)
	return m
}

// SeedProduct inserts a product at the given price.
func SeedProduct(t *testing.T, db *gorm.DB, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, db.Create(p).Error)
	return p
}

// SeedCategory inserts a category.
func SeedCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(c).Error)
	return c
}

// SeedWarehouseStock inserts a warehouse ledger row.
func SeedWarehouseStock(t *testing.T, db *gorm.DB, warehouseID, productID uuid.UUID, quantity int64) {
	t.Helper()
	row, err := inventory.NewWarehouseStock(warehouseID, productID, quantity)
	require.NoError(t, err)
	require.NoError(t, db.Create(row).Error)
}

// SeedMerchantStock inserts a merchant ledger row sourced from a warehouse.
func SeedMerchantStock(t *testing.T, db *gorm.DB, merchantID, productID, warehouseID uuid.UUID, quantity int64) {
	t.Helper()
	row, err := inventory.NewMerchantStock(merchantID, productID, warehouseID, quantity)
	require.NoError(t, err)
	require.NoError(t, db.Create(row).Error)
}

// WarehouseQuantity reads a warehouse row's quantity, or -1 when absent.
func WarehouseQuantity(t *testing.T, db *gorm.DB, warehouseID, productID uuid.UUID) int64 {
	t.Helper()
	var row inventory.WarehouseStock
	err := db.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1
	}
	require.NoError(t, err)
	return row.Quantity
}

// MerchantQuantity reads a merchant row's quantity, or -1 when absent.
func MerchantQuantity(t *testing.T, db *gorm.DB, merchantID, productID uuid.UUID) int64 {
	t.Helper()
	var row inventory.MerchantStock
	err := db.Where("merchant_id = ? AND product_id = ?", merchantID, productID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return -1
	}
	require.NoError(t, err)
	return row.Quantity
}
