package persistence

import (
	"github.com/saturday/backend/internal/domain/catalog"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// Models lists every persisted entity. SQL migrations own the production
// schema; AutoMigrate over this list is for throwaway test databases.
func Models() []any {
	return []any{
		&partner.Warehouse{},
		&partner.Merchant{},
		&catalog.Category{},
		&catalog.Product{},
		&inventory.WarehouseStock{},
		&inventory.MerchantStock{},
		&trade.Transaction{},
		&trade.TransactionLine{},
	}
}

// AutoMigrate creates or updates the tables for Models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
