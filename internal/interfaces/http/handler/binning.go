package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/medstock/backend/internal/application/inventory"
)

// BinningHandler handles putting received stock away
type BinningHandler struct {
	BaseHandler
	binningService *inventoryapp.BinningService
}

// NewBinningHandler creates a new BinningHandler
func NewBinningHandler(binningService *inventoryapp.BinningService) *BinningHandler {
	return &BinningHandler{binningService: binningService}
}

// Bin godoc
// @Summary      Bin an MRN
// @Description  Adds every MRN line to the stock at the destination and marks the MRN binned, in one transaction.
// @Description  binned_by is the caller.
// @Tags         binning
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.BinRequest true "MRN and destination"
// @Success      201 {object} APIResponse[inventoryapp.BinningLogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /binning-logs [post]
func (h *BinningHandler) Bin(c *gin.Context) {
	var req inventoryapp.BinRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.binningService.Bin(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, entry)
}

// List godoc
// @Summary      List binning logs
// @Tags         binning
// @Produce      json
// @Param        item_id     query string false "Item on the MRN" format(uuid)
// @Param        location_id query string false "Destination" format(uuid)
// @Param        user_id     query string false "Binned by" format(uuid)
// @Param        from_date   query string false "From (YYYY-MM-DD)"
// @Param        to_date     query string false "To (YYYY-MM-DD)"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} APIResponse[[]inventoryapp.BinningLogResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /binning-logs [get]
func (h *BinningHandler) List(c *gin.Context) {
	var filter inventoryapp.BinningLogListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	logs, total, err := h.binningService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, logs, total, filter.Page, filter.PageSize)
}
