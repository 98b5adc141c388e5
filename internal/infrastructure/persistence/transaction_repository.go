package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts the transaction header and its lines
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *trade.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByID finds a transaction with its lines
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	var transaction trade.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindByMerchant lists a merchant's transactions with their lines
func (r *GormTransactionRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]trade.Transaction, error) {
	var transactions []trade.Transaction
	query := r.db.WithContext(ctx).
		Model(&trade.Transaction{}).
		Preload("Lines").
		Where("merchant_id = ?", merchantID)
	if err := paginate(query, filter, TransactionSortFields).Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// CountByMerchant counts a merchant's transactions
func (r *GormTransactionRepository) CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Transaction{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ trade.TransactionRepository = (*GormTransactionRepository)(nil)
