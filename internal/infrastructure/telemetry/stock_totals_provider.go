package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormStockTotalsProvider sums the stock ledgers with GORM.
type GormStockTotalsProvider struct {
	db *gorm.DB
}

// NewGormStockTotalsProvider creates a new GormStockTotalsProvider.
func NewGormStockTotalsProvider(db *gorm.DB) *GormStockTotalsProvider {
	return &GormStockTotalsProvider{db: db}
}

// StockTotals returns the units held by all warehouses and all merchants.
func (p *GormStockTotalsProvider) StockTotals(ctx context.Context) (int64, int64, error) {
	warehouse, err := p.sum(ctx, "warehouse_stock")
	if err != nil {
		return 0, 0, err
	}
	merchant, err := p.sum(ctx, "merchant_stock")
	if err != nil {
		return 0, 0, err
	}
	return warehouse, merchant, nil
}

func (p *GormStockTotalsProvider) sum(ctx context.Context, table string) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).
		Table(table).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
