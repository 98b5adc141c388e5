package trade_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	inventoryapp "github.com/saturday/backend/internal/application/inventory"
	tradeapp "github.com/saturday/backend/internal/application/trade"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/domain/trade"
	"github.com/saturday/backend/internal/infrastructure/persistence"
	"github.com/saturday/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaleScenarios(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	transactions := persistence.NewGormTransactionRepository(db)
	service := tradeapp.NewTransactionService(
		persistence.NewGormMerchantRepository(db),
		transactions,
		persistence.NewGormTransactionScope(db),
		trade.NoTax{},
		zap.NewNop(),
	)

	w := testutil.SeedWarehouse(t, db, "Gudang")
	m := testutil.SeedMerchant(t, db, "Toko", testutil.TestKeeperID())
	p := testutil.SeedProduct(t, db, "Beras 5kg", "72000")
	q := testutil.SeedProduct(t, db, "Minyak 1L", "18000")
	r := testutil.SeedProduct(t, db, "Telur", "2000")
	testutil.SeedMerchantStock(t, db, m.ID, p.ID, w.ID, 10)
	testutil.SeedMerchantStock(t, db, m.ID, q.ID, w.ID, 2)
	testutil.SeedMerchantStock(t, db, m.ID, r.ID, w.ID, 30)

	sell := func(lines ...tradeapp.TransactionProductInput) (*tradeapp.TransactionResponse, error) {
		return service.Create(ctx, tradeapp.CreateTransactionRequest{
			MerchantID: m.ID,
			Name:       "Alice",
			Phone:      "0800000",
			Products:   lines,
		})
	}

	t.Run("sale decrements merchant stock", func(t *testing.T) {
		resp, err := sell(tradeapp.TransactionProductInput{ProductID: p.ID, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(5), testutil.MerchantQuantity(t, db, m.ID, p.ID))
		assert.True(t, decimal.NewFromInt(5*72000).Equal(resp.SubTotal))

		stored, err := transactions.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		require.Len(t, stored.Lines, 1)
		assert.True(t, decimal.NewFromInt(72000).Equal(stored.Lines[0].UnitPrice))
	})

	t.Run("oversold line changes nothing", func(t *testing.T) {
		_, err := sell(
			tradeapp.TransactionProductInput{ProductID: p.ID, Quantity: 1},
			tradeapp.TransactionProductInput{ProductID: q.ID, Quantity: 3},
			tradeapp.TransactionProductInput{ProductID: r.ID, Quantity: 1},
		)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		assert.Equal(t, int64(5), testutil.MerchantQuantity(t, db, m.ID, p.ID))
		assert.Equal(t, int64(2), testutil.MerchantQuantity(t, db, m.ID, q.ID))
		assert.Equal(t, int64(30), testutil.MerchantQuantity(t, db, m.ID, r.ID))

		count, err := transactions.CountByMerchant(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("multi line sale", func(t *testing.T) {
		resp, err := sell(
			tradeapp.TransactionProductInput{ProductID: q.ID, Quantity: 2},
			tradeapp.TransactionProductInput{ProductID: r.ID, Quantity: 12},
		)
		require.NoError(t, err)
		assert.Len(t, resp.Products, 2)
		assert.True(t, decimal.NewFromInt(2*18000+12*2000).Equal(resp.SubTotal))
		assert.Equal(t, int64(0), testutil.MerchantQuantity(t, db, m.ID, q.ID))
		assert.Equal(t, int64(18), testutil.MerchantQuantity(t, db, m.ID, r.ID))

		list, total, err := service.ListByMerchant(ctx, m.ID, tradeapp.TransactionListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, resp.ID, list[0].ID)
	})

	t.Run("overflowing demand is rejected", func(t *testing.T) {
		_, err := sell(
			tradeapp.TransactionProductInput{ProductID: q.ID, Quantity: math.MaxInt64},
			tradeapp.TransactionProductInput{ProductID: q.ID, Quantity: 2},
		)
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
		assert.Equal(t, int64(0), testutil.MerchantQuantity(t, db, m.ID, q.ID))

		count, err := transactions.CountByMerchant(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("unassigned product", func(t *testing.T) {
		_, err := sell(tradeapp.TransactionProductInput{ProductID: uuid.New(), Quantity: 1})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "PRODUCT_NOT_ASSIGNED", domainErr.Code)
	})
}

func TestMerchantStockConservedAcrossSaleAndTransfer(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	scope := persistence.NewGormTransactionScope(db)
	logger := zap.NewNop()

	w := testutil.SeedWarehouse(t, db, "Gudang")
	m := testutil.SeedMerchant(t, db, "Toko", testutil.TestKeeperID())
	p := testutil.SeedProduct(t, db, "Kopi", "9000")
	testutil.SeedWarehouseStock(t, db, w.ID, p.ID, 100)

	engine := inventoryapp.NewTransferEngine(scope, logger)
	merchants := inventoryapp.NewMerchantProductService(
		persistence.NewGormMerchantRepository(db),
		persistence.NewGormMerchantStockRepository(db),
		scope, engine, logger)
	sales := tradeapp.NewTransactionService(
		persistence.NewGormMerchantRepository(db),
		persistence.NewGormTransactionRepository(db),
		scope, nil, logger)

	_, err := merchants.Assign(ctx, inventoryapp.AssignProductInput{MerchantID: m.ID, ProductID: p.ID, WarehouseID: w.ID, Stock: 30})
	require.NoError(t, err)

	_, err = sales.Create(ctx, tradeapp.CreateTransactionRequest{
		MerchantID: m.ID, Name: "Budi", Phone: "0812",
		Products: []tradeapp.TransactionProductInput{{ProductID: p.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	_, err = merchants.UpdateStock(ctx, inventoryapp.UpdateMerchantStockInput{MerchantID: m.ID, ProductID: p.ID, WarehouseID: w.ID, Stock: 0})
	require.NoError(t, err)

	assert.Equal(t, int64(90), testutil.WarehouseQuantity(t, db, w.ID, p.ID))
	assert.Equal(t, int64(0), testutil.MerchantQuantity(t, db, m.ID, p.ID))
}
