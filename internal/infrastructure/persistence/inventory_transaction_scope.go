package persistence

import (
	"context"

	appinv "github.com/saturday/backend/internal/application/inventory"
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Ledger returns the stock accessor scoped to the current transaction.
func (r *gormTransactionalRepositories) Ledger() inventory.Ledger {
	return NewGormStockLedger(r.tx)
}

// WarehouseStockRepo returns the warehouse ledger row repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WarehouseStockRepo() inventory.WarehouseStockRepository {
	return NewGormWarehouseStockRepository(r.tx)
}

// MerchantStockRepo returns the merchant ledger row repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MerchantStockRepo() inventory.MerchantStockRepository {
	return NewGormMerchantStockRepository(r.tx)
}

// MerchantRepo returns the merchant repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MerchantRepo() partner.MerchantRepository {
	return NewGormMerchantRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// TransactionRepo returns the sale transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TransactionRepo() trade.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
