package trade

import (
	"context"
	"errors"

	"github.com/saturday/backend/internal/domain/shared"
)

// MetricsRecorder receives sale measurements
type MetricsRecorder interface {
	RecordTransaction(ctx context.Context, lines int, units int64)
	RecordRejection(ctx context.Context, operation, code string)
}

type nopMetrics struct{}

func (nopMetrics) RecordTransaction(context.Context, int, int64) {}

func (nopMetrics) RecordRejection(context.Context, string, string) {}

func recordRejection(ctx context.Context, m MetricsRecorder, operation string, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		m.RecordRejection(ctx, operation, domainErr.Code)
	}
}
