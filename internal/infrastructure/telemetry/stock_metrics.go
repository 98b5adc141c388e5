package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when metrics are created without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// StockTotalsProvider sums the units held in each ledger.
type StockTotalsProvider interface {
	StockTotals(ctx context.Context) (warehouse, merchant int64, err error)
}

// StockMetrics records stock movements, sales and rejected operations.
// It satisfies the recorder interfaces of the inventory and trade services.
type StockMetrics struct {
	logger *zap.Logger

	transfersTotal   *Counter
	unitsMovedTotal  *Counter
	rejectionsTotal  *Counter
	transactionTotal *Counter
	unitsSoldTotal   *Counter
	transactionLines *Histogram

	registration metric.Registration
}

// StockMetricsConfig configures StockMetrics.
type StockMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
	// Totals, when set, backs the stock_units_on_hand gauge
	Totals StockTotalsProvider
}

// NewStockMetrics creates the stock instruments on the given meter.
func NewStockMetrics(cfg StockMetricsConfig) (*StockMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &StockMetrics{logger: logger}
	var err error

	if sm.transfersTotal, err = NewCounter(cfg.Meter,
		"stock_transfers_total", "Stock transfers between warehouse and merchant ledgers", "{transfers}"); err != nil {
		return nil, err
	}
	if sm.unitsMovedTotal, err = NewCounter(cfg.Meter,
		"stock_units_moved_total", "Units moved between warehouse and merchant ledgers", "{units}"); err != nil {
		return nil, err
	}
	if sm.rejectionsTotal, err = NewCounter(cfg.Meter,
		"stock_rejections_total", "Operations rejected by a business rule", "{operations}"); err != nil {
		return nil, err
	}
	if sm.transactionTotal, err = NewCounter(cfg.Meter,
		"sales_transactions_total", "Recorded sales transactions", "{transactions}"); err != nil {
		return nil, err
	}
	if sm.unitsSoldTotal, err = NewCounter(cfg.Meter,
		"sales_units_sold_total", "Units removed from merchant stock by sales", "{units}"); err != nil {
		return nil, err
	}
	if sm.transactionLines, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "sales_transaction_lines",
		Description: "Product lines per sales transaction",
		Unit:        "{lines}",
		Boundaries:  LineCountBuckets,
	}); err != nil {
		return nil, err
	}

	if cfg.Totals != nil {
		if err := sm.observeTotals(cfg.Meter, cfg.Totals); err != nil {
			return nil, err
		}
	}

	return sm, nil
}

func (sm *StockMetrics) observeTotals(meter metric.Meter, totals StockTotalsProvider) error {
	gauge, err := meter.Int64ObservableGauge("stock_units_on_hand",
		metric.WithDescription("Units currently held per ledger"),
		metric.WithUnit("{units}"),
	)
	if err != nil {
		return err
	}

	sm.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		warehouse, merchant, err := totals.StockTotals(ctx)
		if err != nil {
			sm.logger.Warn("Failed to collect stock totals", zap.Error(err))
			return nil
		}
		o.ObserveInt64(gauge, warehouse, metric.WithAttributes(AttrLocation.String("warehouse")))
		o.ObserveInt64(gauge, merchant, metric.WithAttributes(AttrLocation.String("merchant")))
		return nil
	}, gauge)
	return err
}

// RecordTransfer counts a stock transfer and the units it moved.
func (sm *StockMetrics) RecordTransfer(ctx context.Context, direction string, quantity int64) {
	sm.transfersTotal.Inc(ctx, AttrDirection.String(direction))
	if quantity > 0 {
		sm.unitsMovedTotal.Add(ctx, quantity, AttrDirection.String(direction))
	}
}

// RecordRejection counts an operation refused with a domain error code.
func (sm *StockMetrics) RecordRejection(ctx context.Context, operation, code string) {
	sm.rejectionsTotal.Inc(ctx, AttrOperation.String(operation), AttrErrorCode.String(code))
}

// RecordTransaction counts a recorded sale.
func (sm *StockMetrics) RecordTransaction(ctx context.Context, lines int, units int64) {
	sm.transactionTotal.Inc(ctx)
	sm.unitsSoldTotal.Add(ctx, units)
	sm.transactionLines.Record(ctx, float64(lines))
}

// Close stops observing stock totals.
func (sm *StockMetrics) Close() error {
	if sm.registration == nil {
		return nil
	}
	return sm.registration.Unregister()
}
