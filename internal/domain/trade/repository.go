package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
)

// TransactionRepository defines persistence for sale transactions.
// Transactions are append-only: there is no update or delete.
type TransactionRepository interface {
	// Create persists the header and all lines
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID finds a transaction with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByMerchant lists a merchant's transactions, newest first, with lines
	FindByMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]Transaction, error)

	// CountByMerchant counts a merchant's transactions
	CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error)
}
