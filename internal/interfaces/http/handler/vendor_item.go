package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/medstock/backend/internal/application/partner"
)

// VendorItemHandler handles vendor price links
type VendorItemHandler struct {
	BaseHandler
	vendorItemService *partnerapp.VendorItemService
}

// NewVendorItemHandler creates a new VendorItemHandler
func NewVendorItemHandler(vendorItemService *partnerapp.VendorItemService) *VendorItemHandler {
	return &VendorItemHandler{vendorItemService: vendorItemService}
}

// Create godoc
// @Summary      Create a vendor item
// @Description  Both the vendor and the item must exist and not be deleted
// @Tags         vendor-items
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateVendorItemRequest true "Vendor item"
// @Success      201 {object} APIResponse[partnerapp.VendorItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor-items [post]
func (h *VendorItemHandler) Create(c *gin.Context) {
	var req partnerapp.CreateVendorItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.vendorItemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get a vendor item
// @Tags         vendor-items
// @Produce      json
// @Param        id path string true "Vendor item ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.VendorItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor-items/{id} [get]
func (h *VendorItemHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	found, err := h.vendorItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, found)
}

// List godoc
// @Summary      List vendor items
// @Tags         vendor-items
// @Produce      json
// @Param        vendor_id query string false "Vendor"
// @Param        item_id   query string false "Item"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]partnerapp.VendorItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor-items [get]
func (h *VendorItemHandler) List(c *gin.Context) {
	var filter partnerapp.VendorItemListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.vendorItemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Change a quoted price
// @Tags         vendor-items
// @Accept       json
// @Produce      json
// @Param        id      path string true "Vendor item ID" format(uuid)
// @Param        request body partnerapp.UpdateVendorItemRequest true "Fields to change"
// @Success      200 {object} APIResponse[partnerapp.VendorItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor-items/{id} [put]
func (h *VendorItemHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateVendorItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.vendorItemService.UpdatePrice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete a vendor item
// @Tags         vendor-items
// @Param        id path string true "Vendor item ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendor-items/{id} [delete]
func (h *VendorItemHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.vendorItemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
