package trade

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	inventoryapp "github.com/saturday/backend/internal/application/inventory"
	"github.com/saturday/backend/internal/domain/inventory"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/domain/trade"
	"github.com/saturday/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionService records sales against merchant stock.
// A sale either decrements every line and is stored, or changes nothing.
type TransactionService struct {
	merchantRepo    partner.MerchantRepository
	transactionRepo trade.TransactionRepository
	txScope         inventoryapp.TransactionScope
	taxPolicy       trade.TaxPolicy
	metrics         MetricsRecorder
	logger          *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	merchantRepo partner.MerchantRepository,
	transactionRepo trade.TransactionRepository,
	txScope inventoryapp.TransactionScope,
	taxPolicy trade.TaxPolicy,
	logger *zap.Logger,
) *TransactionService {
	if taxPolicy == nil {
		taxPolicy = trade.NoTax{}
	}
	return &TransactionService{
		merchantRepo:    merchantRepo,
		transactionRepo: transactionRepo,
		txScope:         txScope,
		taxPolicy:       taxPolicy,
		metrics:         nopMetrics{},
		logger:          logger,
	}
}

// SetMetrics sets the recorder for sale measurements
func (s *TransactionService) SetMetrics(metrics MetricsRecorder) {
	if metrics != nil {
		s.metrics = metrics
	}
}

// Create validates and records a sale, decrementing the merchant's stock
// for every line
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (_ *TransactionResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transaction", "create",
		telemetry.SpanAttrMerchantID, req.MerchantID,
		telemetry.SpanAttrLines, len(req.Products),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	demand, err := validateLines(req.Products)
	if err != nil {
		recordRejection(ctx, s.metrics, "transaction_create", err)
		return nil, err
	}

	exists, err := s.merchantRepo.ExistsByID(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		recordRejection(ctx, s.metrics, "transaction_create", partner.ErrMerchantNotFound)
		return nil, partner.ErrMerchantNotFound
	}

	txn, err := trade.NewTransaction(req.MerchantID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	// Merchant rows are locked in ascending product order so concurrent
	// sales over overlapping products cannot deadlock.
	productIDs := make([]uuid.UUID, 0, len(demand))
	for id := range demand {
		productIDs = append(productIDs, id)
	}
	slices.SortFunc(productIDs, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	err = s.txScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		ledger := repos.Ledger()

		available := make(map[uuid.UUID]int64, len(productIDs))
		for _, productID := range productIDs {
			quantity, err := ledger.GetStock(ctx, inventory.LocationMerchant, req.MerchantID, productID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return inventory.NewProductNotAssignedError(productID)
				}
				return err
			}
			if quantity < demand[productID] {
				return inventory.NewInsufficientStockError(productID, quantity, demand[productID])
			}
			available[productID] = quantity
		}

		products, err := repos.ProductRepo().FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		prices := make(map[uuid.UUID]decimal.Decimal, len(products))
		for _, product := range products {
			prices[product.ID] = product.Price
		}

		for i, line := range req.Products {
			price, ok := prices[line.ProductID]
			if !ok {
				return shared.ErrNotFound.
					WithField(fmt.Sprintf("products.%d.product_id", i)).
					WithMessage("Product not found")
			}
			if _, err := txn.AddLine(line.ProductID, line.Quantity, price); err != nil {
				return err
			}
		}
		txn.ApplyTax(s.taxPolicy)
		if err := txn.Validate(); err != nil {
			return err
		}

		for _, productID := range productIDs {
			remaining := available[productID] - demand[productID]
			if err := ledger.SetStock(ctx, inventory.LocationMerchant, req.MerchantID, productID, remaining); err != nil {
				return err
			}
		}

		return repos.TransactionRepo().Create(ctx, txn)
	})
	if err != nil {
		recordRejection(ctx, s.metrics, "transaction_create", err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrTransactionID, txn.ID)
	s.metrics.RecordTransaction(ctx, len(txn.Lines), txn.TotalQuantity())
	s.logger.Info("Transaction recorded",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("merchant_id", txn.MerchantID.String()),
		zap.Int("lines", len(txn.Lines)),
		zap.String("grand_total", txn.GrandTotal.String()),
	)

	response := ToTransactionResponse(txn)
	return &response, nil
}

// GetByID returns a transaction with its lines
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(txn)
	return &response, nil
}

// ListByMerchant lists a merchant's transactions, newest first
func (s *TransactionService) ListByMerchant(ctx context.Context, merchantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	listFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		listFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		listFilter.PageSize = filter.PageSize
	}

	transactions, err := s.transactionRepo.FindByMerchant(ctx, merchantID, listFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountByMerchant(ctx, merchantID)
	if err != nil {
		return nil, 0, err
	}
	return ToTransactionResponses(transactions), total, nil
}

// validateLines checks the request lines and sums the demand per product
func validateLines(lines []TransactionProductInput) (map[uuid.UUID]int64, error) {
	if len(lines) == 0 {
		return nil, shared.NewFieldError("INVALID_INPUT", "products", "Transaction must contain at least one product")
	}
	demand := make(map[uuid.UUID]int64, len(lines))
	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewFieldError("INVALID_INPUT", fmt.Sprintf("products.%d.product_id", i), "Product ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity.
				WithField(fmt.Sprintf("products.%d.quantity", i)).
				WithMessage("Quantity must be a positive whole number")
		}
		if demand[line.ProductID] > math.MaxInt64-line.Quantity {
			return nil, shared.ErrInvalidQuantity.
				WithField(fmt.Sprintf("products.%d.quantity", i)).
				WithMessage("Total quantity for a product exceeds the maximum")
		}
		demand[line.ProductID] += line.Quantity
	}
	return demand, nil
}
