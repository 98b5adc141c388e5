package inventory

import (
	"context"

	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the stock repositories.
// All repository operations made through the repositories handed to fn are
// part of the same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a transaction.
// All repositories returned share the same underlying database transaction.
//
// Stock quantities change only through Ledger(). The stock repositories are
// used to create, look up and delete ledger rows.
type TransactionalRepositories interface {
	// Ledger returns the stock accessor scoped to the current transaction
	Ledger() inventory.Ledger
	// WarehouseStockRepo returns the warehouse ledger row repository
	WarehouseStockRepo() inventory.WarehouseStockRepository
	// MerchantStockRepo returns the merchant ledger row repository
	MerchantStockRepo() inventory.MerchantStockRepository
	// MerchantRepo returns the merchant repository
	MerchantRepo() partner.MerchantRepository
	// ProductRepo returns the product repository
	ProductRepo() catalog.ProductRepository
	// TransactionRepo returns the sale transaction repository
	TransactionRepo() trade.TransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing with mocked repositories.
type NoOpTransactionScope struct {
	ledger          inventory.Ledger
	warehouseStock  inventory.WarehouseStockRepository
	merchantStock   inventory.MerchantStockRepository
	merchantRepo    partner.MerchantRepository
	productRepo     catalog.ProductRepository
	transactionRepo trade.TransactionRepository
}

// NoOpRepositories groups the repositories handed out by a NoOpTransactionScope
type NoOpRepositories struct {
	Ledger         inventory.Ledger
	WarehouseStock inventory.WarehouseStockRepository
	MerchantStock  inventory.MerchantStockRepository
	Merchants      partner.MerchantRepository
	Products       catalog.ProductRepository
	Transactions   trade.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(repos NoOpRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ledger:          repos.Ledger,
		warehouseStock:  repos.WarehouseStock,
		merchantStock:   repos.MerchantStock,
		merchantRepo:    repos.Merchants,
		productRepo:     repos.Products,
		transactionRepo: repos.Transactions,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ledger returns the stock accessor.
func (s *NoOpTransactionScope) Ledger() inventory.Ledger {
	return s.ledger
}

// WarehouseStockRepo returns the warehouse ledger row repository.
func (s *NoOpTransactionScope) WarehouseStockRepo() inventory.WarehouseStockRepository {
	return s.warehouseStock
}

// MerchantStockRepo returns the merchant ledger row repository.
func (s *NoOpTransactionScope) MerchantStockRepo() inventory.MerchantStockRepository {
	return s.merchantStock
}

// MerchantRepo returns the merchant repository.
func (s *NoOpTransactionScope) MerchantRepo() partner.MerchantRepository {
	return s.merchantRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// TransactionRepo returns the sale transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() trade.TransactionRepository {
	return s.transactionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
