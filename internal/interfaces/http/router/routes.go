package router

import (
	"github.com/gin-gonic/gin"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/interfaces/http/handler"
	"github.com/saturday/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted under /api/v1
type Handlers struct {
	Warehouse   *handler.WarehouseHandler
	Merchant    *handler.MerchantHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Transaction *handler.TransactionHandler
	System      *handler.SystemHandler
}

// APIConfig carries what the versioned API needs besides its handlers
type APIConfig struct {
	JWTService       *auth.JWTService
	IdempotencyStore shared.IdempotencyStore
	Idempotency      shared.IdempotencyConfig
	Logger           *zap.Logger
}

// RegisterAPI mounts every /api/v1 route. Health is public, managers run
// the stock administration, and keepers act through their own merchant.
func RegisterAPI(engine *gin.Engine, h Handlers, cfg APIConfig) {
	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(
		middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService: cfg.JWTService,
			SkipPaths:  []string{"/api/v1/health"},
			Logger:     cfg.Logger,
		}),
		middleware.TracingAttributeInjector(),
	)

	roles := middleware.RoleConfig{Logger: cfg.Logger}
	managerOnly := middleware.RequireRoleWithConfig(roles, auth.RoleManager)
	keeperOnly := middleware.RequireRoleWithConfig(roles, auth.RoleKeeper)
	anyStaff := middleware.RequireRoleWithConfig(roles, auth.RoleManager, auth.RoleKeeper)

	system := NewDomainGroup("/health")
	system.GET("", h.System.Health)

	warehouses := NewDomainGroup("/warehouses")
	warehouses.Use(managerOnly)
	warehouses.POST("", h.Warehouse.Create)
	warehouses.GET("", h.Warehouse.List)
	warehouses.GET("/:id", h.Warehouse.GetByID)
	warehouses.PUT("/:id", h.Warehouse.Update)
	warehouses.DELETE("/:id", h.Warehouse.Delete)
	warehouses.GET("/:id/products", h.Warehouse.ListProducts)
	warehouses.POST("/:id/products", h.Warehouse.AttachProduct)
	warehouses.PUT("/:id/products/:product", h.Warehouse.UpdateProductStock)
	warehouses.DELETE("/:id/products/:product", h.Warehouse.DetachProduct)

	merchants := NewDomainGroup("/merchants")
	merchants.Use(managerOnly)
	merchants.POST("", h.Merchant.Create)
	merchants.GET("", h.Merchant.List)
	merchants.GET("/:id", h.Merchant.GetByID)
	merchants.PUT("/:id", h.Merchant.Update)
	merchants.DELETE("/:id", h.Merchant.Delete)
	merchants.GET("/:id/products", h.Merchant.ListProducts)
	merchants.POST("/:id/products", h.Merchant.AssignProduct)
	merchants.PUT("/:id/products/:product", h.Merchant.UpdateProductStock)
	merchants.DELETE("/:id/products/:product", h.Merchant.RemoveProduct)
	merchants.GET("/:id/transactions", h.Merchant.ListTransactions)

	products := NewDomainGroup("/products")
	products.POST("", managerOnly, h.Product.Create)
	products.GET("", managerOnly, h.Product.List)
	products.GET("/:id", anyStaff, h.Product.GetByID)
	products.PUT("/:id", managerOnly, h.Product.Update)
	products.DELETE("/:id", managerOnly, h.Product.Delete)

	categories := NewDomainGroup("/categories")
	categories.POST("", managerOnly, h.Category.Create)
	categories.GET("", anyStaff, h.Category.List)
	categories.GET("/:id", anyStaff, h.Category.GetByID)
	categories.PUT("/:id", managerOnly, h.Category.Update)
	categories.DELETE("/:id", managerOnly, h.Category.Delete)

	transactions := NewDomainGroup("/transactions")
	transactions.Use(anyStaff)
	transactions.POST("", middleware.Idempotency(cfg.IdempotencyStore, cfg.Idempotency), h.Transaction.Create)
	transactions.GET("/:id", h.Transaction.GetByID)

	myMerchant := NewDomainGroup("/my-merchant")
	myMerchant.Use(keeperOnly)
	myMerchant.GET("", h.Merchant.GetMine)
	myMerchant.GET("/transactions", h.Merchant.ListMyTransactions)

	r.Register(system).
		Register(warehouses).
		Register(merchants).
		Register(products).
		Register(categories).
		Register(transactions).
		Register(myMerchant)
	r.Setup()
}
