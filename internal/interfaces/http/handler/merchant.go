package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/saturday/backend/internal/application/inventory"
	partnerapp "github.com/saturday/backend/internal/application/partner"
	tradeapp "github.com/saturday/backend/internal/application/trade"
)

// MerchantHandler handles merchant, merchant stock and keeper endpoints
type MerchantHandler struct {
	BaseHandler
	merchantService    *partnerapp.MerchantService
	stockService       *inventoryapp.MerchantProductService
	transactionService *tradeapp.TransactionService
}

// NewMerchantHandler creates a new MerchantHandler
func NewMerchantHandler(
	merchantService *partnerapp.MerchantService,
	stockService *inventoryapp.MerchantProductService,
	transactionService *tradeapp.TransactionService,
) *MerchantHandler {
	return &MerchantHandler{
		merchantService:    merchantService,
		stockService:       stockService,
		transactionService: transactionService,
	}
}

// AssignProductRequest represents a request to give a merchant a product
// out of a warehouse
//
//	@Description	Request body for assigning a product to a merchant
type AssignProductRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	WarehouseID uuid.UUID `json:"warehouse_id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Stock       *int64    `json:"stock" binding:"required" example:"10"`
}

// UpdateMerchantStockRequest represents a target merchant quantity. The
// named warehouse absorbs the difference.
//
//	@Description	Request body for setting a merchant stock quantity
type UpdateMerchantStockRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Stock       *int64    `json:"stock" binding:"required" example:"15"`
}

// Create godoc
//
//	@Summary	Create a merchant
//	@Tags		merchants
//	@Accept		json
//	@Produce	json
//	@Param		request	body		partnerapp.CreateMerchantRequest	true	"Merchant"
//	@Success	201		{object}	APIResponse[partnerapp.MerchantResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/merchants [post]
func (h *MerchantHandler) Create(c *gin.Context) {
	var req partnerapp.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	merchant, err := h.merchantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, merchant)
}

// GetByID godoc
//
//	@Summary	Get a merchant
//	@Tags		merchants
//	@Produce	json
//	@Param		id	path		string	true	"Merchant ID"
//	@Success	200	{object}	APIResponse[partnerapp.MerchantResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/merchants/{id} [get]
func (h *MerchantHandler) GetByID(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	merchant, err := h.merchantService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, merchant)
}

// List godoc
//
//	@Summary	List merchants
//	@Tags		merchants
//	@Produce	json
//	@Param		page		query		int	false	"Page"
//	@Param		page_size	query		int	false	"Page size"
//	@Success	200			{object}	APIResponse[[]partnerapp.MerchantResponse]
//	@Security	BearerAuth
//	@Router		/merchants [get]
func (h *MerchantHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	merchants, total, err := h.merchantService.List(c.Request.Context(), partnerapp.ListFilter{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, merchants, total, page.Page, page.PageSize)
}

// Update godoc
//
//	@Summary	Update a merchant
//	@Tags		merchants
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string	true	"Merchant ID"
//	@Param		request	body		partnerapp.UpdateMerchantRequest	true	"Merchant"
//	@Success	200		{object}	APIResponse[partnerapp.MerchantResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/merchants/{id} [put]
func (h *MerchantHandler) Update(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	merchant, err := h.merchantService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, merchant)
}

// Delete godoc
//
//	@Summary	Delete a merchant
//	@Tags		merchants
//	@Param		id	path	string	true	"Merchant ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/merchants/{id} [delete]
func (h *MerchantHandler) Delete(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.merchantService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProducts godoc
//
//	@Summary	List the stock held by a merchant
//	@Tags		merchants
//	@Produce	json
//	@Param		id	path		string	true	"Merchant ID"
//	@Success	200	{object}	APIResponse[[]inventoryapp.MerchantStockResponse]
//	@Failure	422	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/merchants/{id}/products [get]
func (h *MerchantHandler) ListProducts(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.stockService.ListProducts(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// AssignProduct godoc
//
//	@Summary		Assign a product to a merchant
//	@Description	Moves the requested stock out of the source warehouse
//	@Tags			merchants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Merchant ID"
//	@Param			request	body		AssignProductRequest	true	"Product, source warehouse and stock"
//	@Success		201		{object}	APIResponse[inventoryapp.MerchantStockResponse]
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/merchants/{id}/products [post]
func (h *MerchantHandler) AssignProduct(c *gin.Context) {
	merchantID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AssignProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	row, err := h.stockService.Assign(c.Request.Context(), inventoryapp.AssignProductInput{
		MerchantID:  merchantID,
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Stock:       *req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// UpdateProductStock godoc
//
//	@Summary		Set the stock of a product at a merchant
//	@Description	Pulls the increase from, or returns the decrease to, the given warehouse
//	@Tags			merchants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Merchant ID"
//	@Param			product	path		string						true	"Product ID"
//	@Param			request	body		UpdateMerchantStockRequest	true	"Target quantity and warehouse"
//	@Success		200		{object}	APIResponse[inventoryapp.TransferResult]
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/merchants/{id}/products/{product} [put]
func (h *MerchantHandler) UpdateProductStock(c *gin.Context) {
	merchantID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := h.bindUUIDParam(c, "product")
	if !ok {
		return
	}
	var req UpdateMerchantStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.stockService.UpdateStock(c.Request.Context(), inventoryapp.UpdateMerchantStockInput{
		MerchantID:  merchantID,
		ProductID:   productID,
		WarehouseID: req.WarehouseID,
		Stock:       *req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RemoveProduct godoc
//
//	@Summary		Remove a product from a merchant
//	@Description	Remaining merchant stock is written off
//	@Tags			merchants
//	@Param			id		path	string	true	"Merchant ID"
//	@Param			product	path	string	true	"Product ID"
//	@Success		204
//	@Failure		422	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/merchants/{id}/products/{product} [delete]
func (h *MerchantHandler) RemoveProduct(c *gin.Context) {
	merchantID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := h.bindUUIDParam(c, "product")
	if !ok {
		return
	}

	if err := h.stockService.Remove(c.Request.Context(), merchantID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListTransactions godoc
//
//	@Summary	List a merchant's transactions
//	@Tags		merchants
//	@Produce	json
//	@Param		id			path		string	true	"Merchant ID"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	APIResponse[[]tradeapp.TransactionResponse]
//	@Security	BearerAuth
//	@Router		/merchants/{id}/transactions [get]
func (h *MerchantHandler) ListTransactions(c *gin.Context) {
	merchantID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.merchantService.GetByID(c.Request.Context(), merchantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.listTransactions(c, merchantID)
}

// GetMine godoc
//
//	@Summary	Get the merchant run by the caller
//	@Tags		keeper
//	@Produce	json
//	@Success	200	{object}	APIResponse[partnerapp.MerchantResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/my-merchant [get]
func (h *MerchantHandler) GetMine(c *gin.Context) {
	keeperID, _, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	merchant, err := h.merchantService.GetMyMerchant(c.Request.Context(), keeperID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, merchant)
}

// ListMyTransactions godoc
//
//	@Summary	List the transactions of the caller's merchant
//	@Tags		keeper
//	@Produce	json
//	@Param		page		query		int	false	"Page"
//	@Param		page_size	query		int	false	"Page size"
//	@Success	200			{object}	APIResponse[[]tradeapp.TransactionResponse]
//	@Failure	404			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/my-merchant/transactions [get]
func (h *MerchantHandler) ListMyTransactions(c *gin.Context) {
	keeperID, _, err := getCaller(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	merchant, err := h.merchantService.GetMyMerchant(c.Request.Context(), keeperID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.listTransactions(c, merchant.ID)
}

func (h *MerchantHandler) listTransactions(c *gin.Context, merchantID uuid.UUID) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	transactions, total, err := h.transactionService.ListByMerchant(c.Request.Context(), merchantID, tradeapp.TransactionListFilter{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transactions, total, page.Page, page.PageSize)
}
