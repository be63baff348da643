package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/medstock/backend/internal/application/inventory"
	"github.com/medstock/backend/internal/domain/inventory"
)

// StockRuleHandler handles reorder rules and the stock monitor
type StockRuleHandler struct {
	BaseHandler
	stockRuleService *inventoryapp.StockRuleService
}

// NewStockRuleHandler creates a new StockRuleHandler
func NewStockRuleHandler(stockRuleService *inventoryapp.StockRuleService) *StockRuleHandler {
	return &StockRuleHandler{stockRuleService: stockRuleService}
}

// Create godoc
// @Summary      Create a stock rule
// @Description  An item has at most one rule
// @Tags         stock-rules
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.StockRuleRequest true "Stock rule"
// @Success      201 {object} APIResponse[inventoryapp.StockRuleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock-rules [post]
func (h *StockRuleHandler) Create(c *gin.Context) {
	var req inventoryapp.StockRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.stockRuleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get a stock rule
// @Tags         stock-rules
// @Produce      json
// @Param        id path string true "Stock rule ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.StockRuleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock-rules/{id} [get]
func (h *StockRuleHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	found, err := h.stockRuleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, found)
}

// List godoc
// @Summary      List stock rules
// @Tags         stock-rules
// @Produce      json
// @Param        item_id   query string false "Item"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]inventoryapp.StockRuleResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock-rules [get]
func (h *StockRuleHandler) List(c *gin.Context) {
	var filter inventoryapp.StockRuleListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.stockRuleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a stock rule
// @Tags         stock-rules
// @Accept       json
// @Produce      json
// @Param        id      path string true "Stock rule ID" format(uuid)
// @Param        request body inventoryapp.StockRuleRequest true "Fields to change"
// @Success      200 {object} APIResponse[inventoryapp.StockRuleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock-rules/{id} [put]
func (h *StockRuleHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.StockRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.stockRuleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete a stock rule
// @Tags         stock-rules
// @Param        id path string true "Stock rule ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock-rules/{id} [delete]
func (h *StockRuleHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.stockRuleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ReorderNeeded godoc
// @Summary      Items below their reorder level
// @Description  Items whose total stock is below the rule's rol, lowest stock first, with the shortfall
// @Tags         stock-monitor
// @Produce      json
// @Success      200 {object} APIResponse[[]inventory.ReorderCandidate]
// @Security     BearerAuth
// @Router       /stock-monitor/reorder-needed [get]
func (h *StockRuleHandler) ReorderNeeded(c *gin.Context) {
	candidates, err := h.stockRuleService.ReorderNeeded(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if candidates == nil {
		candidates = []inventory.ReorderCandidate{}
	}
	h.Success(c, candidates)
}
