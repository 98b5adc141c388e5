package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/saturday/backend/internal/application/partner"
	tradeapp "github.com/saturday/backend/internal/application/trade"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/interfaces/http/dto"
)

// TransactionHandler handles sale endpoints. Managers act on any merchant,
// keepers only on the merchant they run.
type TransactionHandler struct {
	BaseHandler
	transactionService *tradeapp.TransactionService
	merchantService    *partnerapp.MerchantService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(
	transactionService *tradeapp.TransactionService,
	merchantService *partnerapp.MerchantService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		merchantService:    merchantService,
	}
}

// Create godoc
//
//	@Summary		Record a sale
//	@Description	Decrements the merchant's stock for every line, or changes nothing
//	@Tags			transactions
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string								false	"Retry key"
//	@Param			request			body		tradeapp.CreateTransactionRequest	true	"Sale"
//	@Success		201				{object}	APIResponse[tradeapp.TransactionResponse]
//	@Failure		403				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req tradeapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	allowed, err := h.callerRunsMerchant(c, req.MerchantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !allowed {
		h.FieldError(c, http.StatusForbidden, dto.ErrCodeForbidden, "You can only record sales for your own merchant", "merchant_id")
		return
	}

	txn, err := h.transactionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, txn)
}

// GetByID godoc
//
//	@Summary	Get a sale with its lines
//	@Tags		transactions
//	@Produce	json
//	@Param		id	path		string	true	"Transaction ID"
//	@Success	200	{object}	APIResponse[tradeapp.TransactionResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Other merchants' sales are reported as missing, not forbidden
	allowed, err := h.callerRunsMerchant(c, txn.MerchantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !allowed {
		h.NotFound(c, "Transaction not found")
		return
	}
	h.Success(c, txn)
}

// callerRunsMerchant reports whether the caller may act on the merchant.
// Managers always may; keepers only on the merchant they keep.
func (h *TransactionHandler) callerRunsMerchant(c *gin.Context, merchantID uuid.UUID) (bool, error) {
	keeperID, claims, err := getCaller(c)
	if err != nil {
		return false, nil
	}
	if claims.HasRole(auth.RoleManager) {
		return true, nil
	}

	merchant, err := h.merchantService.GetMyMerchant(c.Request.Context(), keeperID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return merchant.ID == merchantID, nil
}
