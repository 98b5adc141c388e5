package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/saturday/backend/internal/application/catalog"
	inventoryapp "github.com/saturday/backend/internal/application/inventory"
	partnerapp "github.com/saturday/backend/internal/application/partner"
	tradeapp "github.com/saturday/backend/internal/application/trade"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/domain/trade"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/infrastructure/cache"
	"github.com/saturday/backend/internal/infrastructure/config"
	"github.com/saturday/backend/internal/infrastructure/logger"
	"github.com/saturday/backend/internal/infrastructure/persistence"
	"github.com/saturday/backend/internal/interfaces/http/dto"
	"github.com/saturday/backend/internal/interfaces/http/handler"
	"github.com/saturday/backend/internal/interfaces/http/middleware"
	"github.com/saturday/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *auth.JWTService
}

func newTestAPI(t *testing.T, checks map[string]handler.Pinger) *testAPI {
	t.Helper()
	middleware.SetupValidator()

	db := testutil.NewSQLiteDB(t)
	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-at-least-32-chars",
		Issuer:                "router-test",
		AccessTokenExpiration: 15 * time.Minute,
	})
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	warehouseRepo := persistence.NewGormWarehouseRepository(db)
	merchantRepo := persistence.NewGormMerchantRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	merchantService := partnerapp.NewMerchantService(merchantRepo, log)
	transactionService := tradeapp.NewTransactionService(
		merchantRepo, persistence.NewGormTransactionRepository(db), txScope, trade.NoTax{}, log)

	h := Handlers{
		Warehouse: handler.NewWarehouseHandler(
			partnerapp.NewWarehouseService(warehouseRepo, log),
			inventoryapp.NewWarehouseProductService(warehouseRepo, productRepo,
				persistence.NewGormWarehouseStockRepository(db), txScope, log),
		),
		Merchant: handler.NewMerchantHandler(
			merchantService,
			inventoryapp.NewMerchantProductService(merchantRepo,
				persistence.NewGormMerchantStockRepository(db), txScope,
				inventoryapp.NewTransferEngine(txScope, log), log),
			transactionService,
		),
		Product:     handler.NewProductHandler(catalogapp.NewProductService(productRepo, categoryRepo, log)),
		Category:    handler.NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, log)),
		Transaction: handler.NewTransactionHandler(transactionService, merchantService),
		System:      handler.NewSystemHandler("test", checks),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), logger.Recovery(log))
	RegisterAPI(engine, h, APIConfig{
		JWTService:       jwtService,
		IdempotencyStore: store,
		Idempotency:      shared.DefaultIdempotencyConfig(),
		Logger:           log,
	})

	return &testAPI{engine: engine, db: db, jwt: jwtService}
}

func (a *testAPI) bearer(t *testing.T, userID uuid.UUID, role auth.Role) map[string]string {
	t.Helper()
	token, _, err := a.jwt.IssueAccessToken(auth.IssueInput{UserID: userID, Name: string(role), Roles: []auth.Role{role}})
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.DoJSON(t, a.engine, method, path, body, headers)
}

type idOnly struct {
	ID uuid.UUID `json:"id"`
}

type stockRow struct {
	ProductID uuid.UUID `json:"product_id"`
	Stock     int64     `json:"stock"`
}

func TestAPI_Authentication(t *testing.T) {
	api := newTestAPI(t, nil)

	t.Run("health is public", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		health := testutil.DecodeData[handler.HealthResponse](t, w)
		assert.Equal(t, "ok", health.Status)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/warehouses", nil, nil)
		testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "")
	})

	t.Run("keeper cannot administer warehouses", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/warehouses", nil, api.bearer(t, uuid.New(), auth.RoleKeeper))
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden, "")
	})

	t.Run("manager cannot use keeper routes", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/my-merchant", nil, api.bearer(t, uuid.New(), auth.RoleManager))
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden, "")
	})

	t.Run("keeper may read a product", func(t *testing.T) {
		p := testutil.SeedProduct(t, api.db, "Gula 1kg", "15000")
		w := api.do(t, http.MethodGet, "/api/v1/products/"+p.ID.String(), nil, api.bearer(t, uuid.New(), auth.RoleKeeper))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAPI_HealthDegraded(t *testing.T) {
	api := newTestAPI(t, map[string]handler.Pinger{
		"database": handler.PingFunc(func(context.Context) error { return nil }),
		"redis":    handler.PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	w := api.do(t, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	env := testutil.DecodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Data), `"redis":"down"`)
	assert.Contains(t, string(env.Data), `"database":"up"`)
}

func TestAPI_StockLifecycle(t *testing.T) {
	api := newTestAPI(t, nil)
	manager := api.bearer(t, uuid.New(), auth.RoleManager)
	keeperID := uuid.New()
	keeper := api.bearer(t, keeperID, auth.RoleKeeper)

	w := api.do(t, http.MethodPost, "/api/v1/warehouses", gin.H{"name": "Gudang Utama", "address": "Jl. Raya 1"}, manager)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	warehouseID := testutil.DecodeData[idOnly](t, w).ID

	w = api.do(t, http.MethodPost, "/api/v1/products", gin.H{"name": "Beras 5kg", "price": "72000"}, manager)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := testutil.DecodeData[idOnly](t, w).ID

	warehouseProducts := fmt.Sprintf("/api/v1/warehouses/%s/products", warehouseID)

	t.Run("attach creates then tops up", func(t *testing.T) {
		w := api.do(t, http.MethodPost, warehouseProducts, gin.H{"product_id": productID, "stock": 60}, manager)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = api.do(t, http.MethodPost, warehouseProducts, gin.H{"product_id": productID, "stock": 40}, manager)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(100), testutil.DecodeData[stockRow](t, w).Stock)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		w := api.do(t, http.MethodPost, warehouseProducts, gin.H{"product_id": productID, "stock": -1}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidQuantity, "")
	})

	t.Run("missing stock fails validation", func(t *testing.T) {
		w := api.do(t, http.MethodPost, warehouseProducts, gin.H{"product_id": productID}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation, "stock")
	})

	t.Run("fractional stock is an invalid quantity", func(t *testing.T) {
		w := api.do(t, http.MethodPost, warehouseProducts, gin.H{"product_id": productID, "stock": 1.5}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidQuantity, "stock")
		assert.Equal(t, int64(100), testutil.WarehouseQuantity(t, api.db, warehouseID, productID))
	})

	t.Run("malformed id", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/warehouses/not-a-uuid", nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput, "id")
	})

	w = api.do(t, http.MethodPost, "/api/v1/merchants", gin.H{"name": "Toko Sejahtera", "keeper_id": keeperID}, manager)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	merchantID := testutil.DecodeData[idOnly](t, w).ID
	merchantProducts := fmt.Sprintf("/api/v1/merchants/%s/products", merchantID)

	t.Run("assign requires a source warehouse", func(t *testing.T) {
		w := api.do(t, http.MethodPost, merchantProducts, gin.H{"product_id": productID, "stock": 5}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeMissingWarehouse, "")
	})

	t.Run("assign cannot exceed warehouse stock", func(t *testing.T) {
		w := api.do(t, http.MethodPost, merchantProducts,
			gin.H{"product_id": productID, "warehouse_id": warehouseID, "stock": 101}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock, "")
		assert.Equal(t, int64(100), testutil.WarehouseQuantity(t, api.db, warehouseID, productID))
	})

	t.Run("assign moves stock out of the warehouse", func(t *testing.T) {
		w := api.do(t, http.MethodPost, merchantProducts,
			gin.H{"product_id": productID, "warehouse_id": warehouseID, "stock": 30}, manager)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, int64(70), testutil.WarehouseQuantity(t, api.db, warehouseID, productID))
		assert.Equal(t, int64(30), testutil.MerchantQuantity(t, api.db, merchantID, productID))
	})

	t.Run("assigning twice is rejected", func(t *testing.T) {
		w := api.do(t, http.MethodPost, merchantProducts,
			gin.H{"product_id": productID, "warehouse_id": warehouseID, "stock": 1}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeAlreadyAssigned, "")
	})

	t.Run("lowering merchant stock returns units", func(t *testing.T) {
		w := api.do(t, http.MethodPut, merchantProducts+"/"+productID.String(),
			gin.H{"warehouse_id": warehouseID, "stock": 20}, manager)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		result := testutil.DecodeData[inventoryapp.TransferResult](t, w)
		assert.Equal(t, int64(10), result.Moved)
		assert.Equal(t, int64(80), result.WarehouseQuantity)
		assert.Equal(t, int64(20), testutil.MerchantQuantity(t, api.db, merchantID, productID))
	})

	t.Run("fractional merchant stock changes nothing", func(t *testing.T) {
		w := api.do(t, http.MethodPut, merchantProducts+"/"+productID.String(),
			gin.H{"warehouse_id": warehouseID, "stock": 25.5}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidQuantity, "stock")
		assert.Equal(t, int64(80), testutil.WarehouseQuantity(t, api.db, warehouseID, productID))
		assert.Equal(t, int64(20), testutil.MerchantQuantity(t, api.db, merchantID, productID))
	})

	t.Run("keeper sees their merchant", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/my-merchant", nil, keeper)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, merchantID, testutil.DecodeData[idOnly](t, w).ID)
	})

	sale := gin.H{
		"merchant_id": merchantID,
		"name":        "Budi",
		"phone":       "08123456789",
		"products":    []gin.H{{"product_id": productID, "quantity": 4}},
	}
	var transactionID uuid.UUID

	t.Run("keeper records a sale once per key", func(t *testing.T) {
		headers := api.bearer(t, keeperID, auth.RoleKeeper)
		headers[middleware.IdempotencyKeyHeader] = "sale-1"

		w := api.do(t, http.MethodPost, "/api/v1/transactions", sale, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		transactionID = testutil.DecodeData[idOnly](t, w).ID
		assert.Equal(t, int64(16), testutil.MerchantQuantity(t, api.db, merchantID, productID))

		w = api.do(t, http.MethodPost, "/api/v1/transactions", sale, headers)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeDuplicateRequest, middleware.IdempotencyKeyHeader)
		assert.Equal(t, int64(16), testutil.MerchantQuantity(t, api.db, merchantID, productID))
	})

	t.Run("oversold sale is rejected", func(t *testing.T) {
		oversold := gin.H{
			"merchant_id": merchantID,
			"name":        "Budi",
			"phone":       "08123456789",
			"products":    []gin.H{{"product_id": productID, "quantity": 17}},
		}
		w := api.do(t, http.MethodPost, "/api/v1/transactions", oversold, keeper)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock, "")
		assert.Equal(t, int64(16), testutil.MerchantQuantity(t, api.db, merchantID, productID))
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		zero := gin.H{
			"merchant_id": merchantID,
			"name":        "Budi",
			"phone":       "08123456789",
			"products":    []gin.H{{"product_id": productID, "quantity": 0}},
		}
		w := api.do(t, http.MethodPost, "/api/v1/transactions", zero, keeper)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidQuantity, "products.0.quantity")
	})

	t.Run("fractional sale quantity is rejected", func(t *testing.T) {
		fractional := gin.H{
			"merchant_id": merchantID,
			"name":        "Budi",
			"phone":       "08123456789",
			"products":    []gin.H{{"product_id": productID, "quantity": 1.5}},
		}
		w := api.do(t, http.MethodPost, "/api/v1/transactions", fractional, keeper)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidQuantity, "")
		assert.Equal(t, int64(16), testutil.MerchantQuantity(t, api.db, merchantID, productID))
	})

	otherKeeperID := uuid.New()
	otherKeeper := api.bearer(t, otherKeeperID, auth.RoleKeeper)
	testutil.SeedMerchant(t, api.db, "Toko Lain", otherKeeperID)

	t.Run("keeper cannot sell for another merchant", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/transactions", sale, otherKeeper)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden, "merchant_id")
	})

	t.Run("transactions are private to their merchant", func(t *testing.T) {
		path := "/api/v1/transactions/" + transactionID.String()

		w := api.do(t, http.MethodGet, path, nil, keeper)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = api.do(t, http.MethodGet, path, nil, otherKeeper)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound, "")

		w = api.do(t, http.MethodGet, path, nil, manager)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("transaction lists are paginated", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/my-merchant/transactions?page=1&page_size=10", nil, keeper)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		env := testutil.DecodeEnvelope(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(1), env.Meta.Total)

		w = api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/merchants/%s/transactions", merchantID), nil, manager)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(1), testutil.DecodeEnvelope(t, w).Meta.Total)
	})

	t.Run("removing a merchant product writes it off", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, merchantProducts+"/"+productID.String(), nil, manager)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(-1), testutil.MerchantQuantity(t, api.db, merchantID, productID))
		assert.Equal(t, int64(80), testutil.WarehouseQuantity(t, api.db, warehouseID, productID))
	})

	t.Run("detach removes the warehouse row", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, warehouseProducts+"/"+productID.String(), nil, manager)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(-1), testutil.WarehouseQuantity(t, api.db, warehouseID, productID))

		w = api.do(t, http.MethodGet, warehouseProducts, nil, manager)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, testutil.DecodeData[[]stockRow](t, w))
	})
}

func TestAPI_CatalogAdministration(t *testing.T) {
	api := newTestAPI(t, nil)
	manager := api.bearer(t, uuid.New(), auth.RoleManager)
	keeper := api.bearer(t, uuid.New(), auth.RoleKeeper)

	w := api.do(t, http.MethodPost, "/api/v1/categories", gin.H{"name": "Minuman", "tagline": "Drinks"}, manager)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID := testutil.DecodeData[idOnly](t, w).ID
	categoryPath := "/api/v1/categories/" + categoryID.String()

	t.Run("keeper can browse but not edit categories", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/categories", nil, keeper)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, testutil.DecodeData[[]catalogapp.CategoryResponse](t, w), 1)

		w = api.do(t, http.MethodPut, categoryPath, gin.H{"name": "Drinks"}, keeper)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden, "")
	})

	t.Run("rename category", func(t *testing.T) {
		w := api.do(t, http.MethodPut, categoryPath, gin.H{"name": "Minuman Dingin", "tagline": "Cold drinks"}, manager)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Minuman Dingin", testutil.DecodeData[catalogapp.CategoryResponse](t, w).Name)
	})

	t.Run("product in unknown category is rejected", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/products",
			gin.H{"name": "Es Teh", "price": "5000", "category_id": uuid.New()}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeCategoryNotFound, "category_id")
	})

	w = api.do(t, http.MethodPost, "/api/v1/products",
		gin.H{"name": "Es Teh", "price": "5000", "category_id": categoryID}, manager)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := testutil.DecodeData[idOnly](t, w).ID
	productPath := "/api/v1/products/" + productID.String()

	t.Run("category with products cannot be deleted", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, categoryPath, nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConflict, "")

		w = api.do(t, http.MethodGet, categoryPath, nil, manager)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("update product replaces fields", func(t *testing.T) {
		w := api.do(t, http.MethodPut, productPath, gin.H{"name": "Es Teh Manis", "price": "6000"}, manager)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		product := testutil.DecodeData[catalogapp.ProductResponse](t, w)
		assert.Equal(t, "Es Teh Manis", product.Name)
		assert.Equal(t, "6000", product.Price.String())
		assert.Nil(t, product.CategoryID)
	})

	t.Run("keeper cannot edit products", func(t *testing.T) {
		w := api.do(t, http.MethodPut, productPath, gin.H{"name": "Free tea", "price": "0"}, keeper)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden, "")

		w = api.do(t, http.MethodDelete, productPath, nil, keeper)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, dto.ErrCodeForbidden, "")
	})

	t.Run("empty category and unstocked product are deleted", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, categoryPath, nil, manager)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = api.do(t, http.MethodDelete, productPath, nil, manager)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = api.do(t, http.MethodGet, productPath, nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound, "")
	})

	t.Run("unknown category", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, "/api/v1/categories/"+uuid.New().String(), nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound, "")
	})
}

func TestAPI_PartnerAdministration(t *testing.T) {
	api := newTestAPI(t, nil)
	manager := api.bearer(t, uuid.New(), auth.RoleManager)
	keeperID := uuid.New()

	warehouse := testutil.SeedWarehouse(t, api.db, "Gudang")
	merchant := testutil.SeedMerchant(t, api.db, "Toko", keeperID)
	product := testutil.SeedProduct(t, api.db, "Kopi", "12000")
	warehousePath := "/api/v1/warehouses/" + warehouse.ID.String()
	merchantPath := "/api/v1/merchants/" + merchant.ID.String()

	t.Run("update warehouse", func(t *testing.T) {
		w := api.do(t, http.MethodPut, warehousePath, gin.H{"name": "Gudang Timur", "phone": "021"}, manager)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Gudang Timur", testutil.DecodeData[partnerapp.WarehouseResponse](t, w).Name)
	})

	t.Run("update warehouse requires a name", func(t *testing.T) {
		w := api.do(t, http.MethodPut, warehousePath, gin.H{"address": "Jl. Baru"}, manager)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation, "name")
	})

	t.Run("update merchant hands it to another keeper", func(t *testing.T) {
		other := uuid.New()
		w := api.do(t, http.MethodPut, merchantPath, gin.H{"name": "Toko Baru", "keeper_id": other}, manager)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, other, testutil.DecodeData[partnerapp.MerchantResponse](t, w).KeeperID)

		w = api.do(t, http.MethodGet, "/api/v1/my-merchant", nil, api.bearer(t, other, auth.RoleKeeper))
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("stocked warehouse and merchant are kept", func(t *testing.T) {
		testutil.SeedWarehouseStock(t, api.db, warehouse.ID, product.ID, 5)
		testutil.SeedMerchantStock(t, api.db, merchant.ID, product.ID, warehouse.ID, 2)

		w := api.do(t, http.MethodDelete, warehousePath, nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConflict, "")
		w = api.do(t, http.MethodDelete, merchantPath, nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConflict, "")
		w = api.do(t, http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusConflict, dto.ErrCodeConflict, "")

		assert.Equal(t, int64(5), testutil.WarehouseQuantity(t, api.db, warehouse.ID, product.ID))
		assert.Equal(t, int64(2), testutil.MerchantQuantity(t, api.db, merchant.ID, product.ID))
	})

	t.Run("emptied merchant then warehouse can be deleted", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, fmt.Sprintf("%s/products/%s", merchantPath, product.ID), nil, manager)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		w = api.do(t, http.MethodDelete, fmt.Sprintf("%s/products/%s", warehousePath, product.ID), nil, manager)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = api.do(t, http.MethodDelete, merchantPath, nil, manager)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		w = api.do(t, http.MethodDelete, warehousePath, nil, manager)
		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = api.do(t, http.MethodGet, warehousePath, nil, manager)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound, "")
	})
}
