package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/medstock/backend/internal/application/trade"
)

// ASNHandler handles advance shipping notices
type ASNHandler struct {
	BaseHandler
	asnService *tradeapp.ASNService
}

// NewASNHandler creates a new ASNHandler
func NewASNHandler(asnService *tradeapp.ASNService) *ASNHandler {
	return &ASNHandler{asnService: asnService}
}

// Create godoc
// @Summary      Create an ASN
// @Description  The referenced purchase order must exist
// @Tags         asn
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateASNRequest true "Asn"
// @Success      201 {object} APIResponse[tradeapp.ASNResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /asn [post]
func (h *ASNHandler) Create(c *gin.Context) {
	var req tradeapp.CreateASNRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.asnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get an ASN
// @Tags         asn
// @Produce      json
// @Param        id path string true "Asn ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.ASNResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /asn/{id} [get]
func (h *ASNHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	found, err := h.asnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, found)
}

// List godoc
// @Summary      List ASNs
// @Tags         asn
// @Produce      json
// @Param        po_id     query string false "Purchase order"
// @Param        vendor_id query string false "Vendor"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]tradeapp.ASNResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /asn [get]
func (h *ASNHandler) List(c *gin.Context) {
	var filter tradeapp.ASNListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.asnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update an ASN
// @Tags         asn
// @Accept       json
// @Produce      json
// @Param        id      path string true "Asn ID" format(uuid)
// @Param        request body tradeapp.UpdateASNRequest true "Fields to change"
// @Success      200 {object} APIResponse[tradeapp.ASNResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /asn/{id} [put]
func (h *ASNHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateASNRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.asnService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete an ASN
// @Tags         asn
// @Param        id path string true "Asn ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /asn/{id} [delete]
func (h *ASNHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.asnService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
