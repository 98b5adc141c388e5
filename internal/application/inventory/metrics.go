package inventory

import (
	"context"
	"errors"

	"github.com/saturday/backend/internal/domain/shared"
)

// MetricsRecorder receives stock movement measurements.
// The telemetry package provides the OpenTelemetry-backed implementation.
type MetricsRecorder interface {
	RecordTransfer(ctx context.Context, direction string, quantity int64)
	RecordRejection(ctx context.Context, operation, code string)
}

type nopMetrics struct{}

func (nopMetrics) RecordTransfer(context.Context, string, int64) {}

func (nopMetrics) RecordRejection(context.Context, string, string) {}

// recordRejection counts business rule failures; infrastructure errors are
// left to tracing
func recordRejection(ctx context.Context, m MetricsRecorder, operation string, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		m.RecordRejection(ctx, operation, domainErr.Code)
	}
}
