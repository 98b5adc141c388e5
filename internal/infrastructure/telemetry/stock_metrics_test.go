package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saturday/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newReader() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

// int64Point returns the value of the data point carrying exactly attrs
func int64Point(t *testing.T, rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not collected", name)

	want := attribute.NewSet(attrs...)
	var points []metricdata.DataPoint[int64]
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		points = data.DataPoints
	case metricdata.Gauge[int64]:
		points = data.DataPoints
	default:
		t.Fatalf("metric %s has unexpected data type %T", name, m.Data)
	}
	for _, dp := range points {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	t.Fatalf("metric %s has no point with attributes %v", name, attrs)
	return 0
}

type fakeTotals struct {
	warehouse, merchant int64
	err                 error
}

func (f fakeTotals) StockTotals(context.Context) (int64, int64, error) {
	return f.warehouse, f.merchant, f.err
}

func TestNewStockMetrics_NilMeter(t *testing.T) {
	sm, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{})
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
	assert.Nil(t, sm)
}

func TestStockMetrics_Transfers(t *testing.T) {
	reader, provider := newReader()
	sm, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	ctx := context.Background()

	sm.RecordTransfer(ctx, "to_merchant", 30)
	sm.RecordTransfer(ctx, "to_merchant", 20)
	sm.RecordTransfer(ctx, "to_warehouse", 40)
	sm.RecordTransfer(ctx, "none", 0)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), int64Point(t, rm, "stock_transfers_total", telemetry.AttrDirection.String("to_merchant")))
	assert.Equal(t, int64(50), int64Point(t, rm, "stock_units_moved_total", telemetry.AttrDirection.String("to_merchant")))
	assert.Equal(t, int64(40), int64Point(t, rm, "stock_units_moved_total", telemetry.AttrDirection.String("to_warehouse")))
	assert.Equal(t, int64(1), int64Point(t, rm, "stock_transfers_total", telemetry.AttrDirection.String("none")))
}

func TestStockMetrics_RejectionsAndSales(t *testing.T) {
	reader, provider := newReader()
	sm, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{Meter: provider.Meter("test")})
	require.NoError(t, err)
	ctx := context.Background()

	sm.RecordRejection(ctx, "merchant_update_stock", "INSUFFICIENT_STOCK")
	sm.RecordRejection(ctx, "merchant_update_stock", "INSUFFICIENT_STOCK")
	sm.RecordRejection(ctx, "transaction_create", "PRODUCT_NOT_ASSIGNED")
	sm.RecordTransaction(ctx, 2, 7)
	sm.RecordTransaction(ctx, 1, 5)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), int64Point(t, rm, "stock_rejections_total",
		telemetry.AttrOperation.String("merchant_update_stock"),
		telemetry.AttrErrorCode.String("INSUFFICIENT_STOCK"),
	))
	assert.Equal(t, int64(1), int64Point(t, rm, "stock_rejections_total",
		telemetry.AttrOperation.String("transaction_create"),
		telemetry.AttrErrorCode.String("PRODUCT_NOT_ASSIGNED"),
	))
	assert.Equal(t, int64(2), int64Point(t, rm, "sales_transactions_total"))
	assert.Equal(t, int64(12), int64Point(t, rm, "sales_units_sold_total"))

	lines, ok := findMetric(rm, "sales_transaction_lines")
	require.True(t, ok)
	hist := lines.Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, 3.0, hist.DataPoints[0].Sum)
}

func TestStockMetrics_ObservesTotals(t *testing.T) {
	reader, provider := newReader()
	sm, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{
		Meter:  provider.Meter("test"),
		Totals: fakeTotals{warehouse: 90, merchant: 10},
	})
	require.NoError(t, err)

	rm := collect(t, reader)
	assert.Equal(t, int64(90), int64Point(t, rm, "stock_units_on_hand", telemetry.AttrLocation.String("warehouse")))
	assert.Equal(t, int64(10), int64Point(t, rm, "stock_units_on_hand", telemetry.AttrLocation.String("merchant")))

	require.NoError(t, sm.Close())
	rm = collect(t, reader)
	_, ok := findMetric(rm, "stock_units_on_hand")
	assert.False(t, ok)
}

func TestStockMetrics_TotalsFailureSkipsObservation(t *testing.T) {
	reader, provider := newReader()
	_, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{
		Meter:  provider.Meter("test"),
		Logger: zap.NewNop(),
		Totals: fakeTotals{err: errors.New("db down")},
	})
	require.NoError(t, err)

	rm := collect(t, reader)
	_, ok := findMetric(rm, "stock_units_on_hand")
	assert.False(t, ok)
}
