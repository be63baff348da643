package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/medstock/backend/internal/application/inventory"
	"github.com/medstock/backend/internal/domain/inventory"
)

// InventoryHandler handles stock records per item and location
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// Create godoc
// @Summary      Create a stock record
// @Description  An item can have one record per location
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateStockRecordRequest true "Stock record"
// @Success      201 {object} APIResponse[inventoryapp.StockRecordResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.stockService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get a stock record
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Stock record ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.StockRecordResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	found, err := h.stockService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, found)
}

// List godoc
// @Summary      List stock records
// @Tags         inventory
// @Produce      json
// @Param        item_id     query string false "Item"
// @Param        location_id query string false "Location"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} APIResponse[[]inventory.StockLine]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Set the quantity
// @Description  Sets the quantity and stamps last_updated
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Stock record ID" format(uuid)
// @Param        request body inventoryapp.UpdateStockRecordRequest true "Fields to change"
// @Success      200 {object} APIResponse[inventoryapp.StockRecordResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateStockRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.stockService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete a stock record
// @Tags         inventory
// @Param        id path string true "Stock record ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.stockService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary godoc
// @Summary      Stock per item
// @Description  Total quantity per item with its per-location breakdown
// @Tags         inventory
// @Produce      json
// @Success      200 {object} APIResponse[[]inventory.ItemStockSummary]
// @Security     BearerAuth
// @Router       /inventory/summary [get]
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.stockService.Summary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if summary == nil {
		summary = []inventory.ItemStockSummary{}
	}
	h.Success(c, summary)
}

// ByItem godoc
// @Summary      Stock of one item
// @Tags         inventory
// @Produce      json
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[[]inventory.StockLine]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/item/{item_id} [get]
func (h *InventoryHandler) ByItem(c *gin.Context) {
	itemID, ok := h.ParamUUID(c, "item_id")
	if !ok {
		return
	}

	lines, err := h.stockService.ByItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if lines == nil {
		lines = []inventory.StockLine{}
	}
	h.Success(c, lines)
}
