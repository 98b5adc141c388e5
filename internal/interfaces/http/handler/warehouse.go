package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/saturday/backend/internal/application/inventory"
	partnerapp "github.com/saturday/backend/internal/application/partner"
)

// WarehouseHandler handles warehouse and warehouse stock endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *partnerapp.WarehouseService
	stockService     *inventoryapp.WarehouseProductService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(
	warehouseService *partnerapp.WarehouseService,
	stockService *inventoryapp.WarehouseProductService,
) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService: warehouseService,
		stockService:     stockService,
	}
}

// AttachProductRequest represents a request to stock a product in a warehouse.
// Stock is not range-checked here so a negative value surfaces as ERR_INVALID_QUANTITY.
//
//	@Description	Request body for attaching a product to a warehouse
type AttachProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Stock     *int64    `json:"stock" binding:"required" example:"100"`
}

// UpdateStockRequest represents a request to overwrite a stock quantity
//
//	@Description	Request body for setting a warehouse stock quantity
type UpdateStockRequest struct {
	Stock *int64 `json:"stock" binding:"required" example:"80"`
}

// Create godoc
//
//	@Summary	Create a warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		request	body		partnerapp.CreateWarehouseRequest	true	"Warehouse"
//	@Success	201		{object}	APIResponse[partnerapp.WarehouseResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req partnerapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// GetByID godoc
//
//	@Summary	Get a warehouse
//	@Tags		warehouses
//	@Produce	json
//	@Param		id	path		string	true	"Warehouse ID"
//	@Success	200	{object}	APIResponse[partnerapp.WarehouseResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// List godoc
//
//	@Summary	List warehouses
//	@Tags		warehouses
//	@Produce	json
//	@Param		page		query		int	false	"Page"
//	@Param		page_size	query		int	false	"Page size"
//	@Success	200			{object}	APIResponse[[]partnerapp.WarehouseResponse]
//	@Security	BearerAuth
//	@Router		/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), partnerapp.ListFilter{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, warehouses, total, page.Page, page.PageSize)
}

// Update godoc
//
//	@Summary	Update a warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string	true	"Warehouse ID"
//	@Param		request	body		partnerapp.UpdateWarehouseRequest	true	"Warehouse"
//	@Success	200		{object}	APIResponse[partnerapp.WarehouseResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// Delete godoc
//
//	@Summary	Delete a warehouse
//	@Tags		warehouses
//	@Param		id	path	string	true	"Warehouse ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProducts godoc
//
//	@Summary	List the stock held by a warehouse
//	@Tags		warehouses
//	@Produce	json
//	@Param		id	path		string	true	"Warehouse ID"
//	@Success	200	{object}	APIResponse[[]inventoryapp.WarehouseStockResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id}/products [get]
func (h *WarehouseHandler) ListProducts(c *gin.Context) {
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

// AttachProduct godoc
//
//	@Summary		Attach a product to a warehouse
//	@Description	Creates the stock row (201) or adds to an existing one (200)
//	@Tags			warehouses
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Warehouse ID"
//	@Param			request	body		AttachProductRequest	true	"Product and initial stock"
//	@Success		201		{object}	APIResponse[inventoryapp.WarehouseStockResponse]
//	@Success		200		{object}	APIResponse[inventoryapp.WarehouseStockResponse]
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouses/{id}/products [post]
func (h *WarehouseHandler) AttachProduct(c *gin.Context) {
	warehouseID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AttachProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.stockService.Attach(c.Request.Context(), warehouseID, req.ProductID, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Created {
		h.Created(c, result.Stock)
		return
	}
	h.Success(c, result.Stock)
}

// UpdateProductStock godoc
//
//	@Summary	Set the stock of a product in a warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Warehouse ID"
//	@Param		product	path		string				true	"Product ID"
//	@Param		request	body		UpdateStockRequest	true	"New quantity"
//	@Success	200		{object}	APIResponse[inventoryapp.WarehouseStockResponse]
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id}/products/{product} [put]
func (h *WarehouseHandler) UpdateProductStock(c *gin.Context) {
	warehouseID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := h.bindUUIDParam(c, "product")
	if !ok {
		return
	}
	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	row, err := h.stockService.UpdateStock(c.Request.Context(), warehouseID, productID, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// DetachProduct godoc
//
//	@Summary	Remove a product from a warehouse
//	@Tags		warehouses
//	@Param		id		path	string	true	"Warehouse ID"
//	@Param		product	path	string	true	"Product ID"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id}/products/{product} [delete]
func (h *WarehouseHandler) DetachProduct(c *gin.Context) {
	warehouseID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := h.bindUUIDParam(c, "product")
	if !ok {
		return
	}

	if err := h.stockService.Detach(c.Request.Context(), warehouseID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
