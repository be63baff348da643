package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/medstock/backend/internal/application/inventory"
)

// MRNHandler handles material receipt notes
type MRNHandler struct {
	BaseHandler
	mrnService *inventoryapp.MRNService
}

// NewMRNHandler creates a new MRNHandler
func NewMRNHandler(mrnService *inventoryapp.MRNService) *MRNHandler {
	return &MRNHandler{mrnService: mrnService}
}

// Create godoc
// @Summary      Create an MRN
// @Description  The MRN and its items are inserted in one transaction
// @Tags         mrns
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateMRNRequest true "Mrn"
// @Success      201 {object} APIResponse[inventoryapp.MRNResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mrns [post]
func (h *MRNHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateMRNRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.mrnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get an MRN
// @Tags         mrns
// @Produce      json
// @Param        id path string true "Mrn ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.MRNResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mrns/{id} [get]
func (h *MRNHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	found, err := h.mrnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, found)
}

// List godoc
// @Summary      List MRNs
// @Tags         mrns
// @Produce      json
// @Param        status    query string false "Status"
// @Param        vendor_id query string false "Vendor"
// @Param        po_id     query string false "Purchase order"
// @Param        search    query string false "MRN number fragment"
// @Param        from_date query string false "From (YYYY-MM-DD)"
// @Param        to_date   query string false "To (YYYY-MM-DD)"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]inventoryapp.MRNResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mrns [get]
func (h *MRNHandler) List(c *gin.Context) {
	var filter inventoryapp.MRNListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.mrnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update an MRN
// @Description  Changes the status and remarks
// @Tags         mrns
// @Accept       json
// @Produce      json
// @Param        id      path string true "Mrn ID" format(uuid)
// @Param        request body inventoryapp.UpdateMRNRequest true "Fields to change"
// @Success      200 {object} APIResponse[inventoryapp.MRNResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mrns/{id} [put]
func (h *MRNHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateMRNRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.mrnService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete an MRN
// @Description  Removes the MRN with its items and binning logs
// @Tags         mrns
// @Param        id path string true "Mrn ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /mrns/{id} [delete]
func (h *MRNHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.mrnService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
