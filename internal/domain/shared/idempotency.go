package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so a retried
// mutating request is not applied twice
type IdempotencyStore interface {
	// Claim reserves a key for the given TTL.
	// Returns true if the key was newly claimed, false if it is already held
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsClaimed checks if a key is currently held
	IsClaimed(ctx context.Context, key string) (bool, error)

	// Release frees a key so the request can be retried (used after a failed request)
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a claimed key blocks repeats
	TTL time.Duration

	// Enabled determines whether Idempotency-Key headers are honoured
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
