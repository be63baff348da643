package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medstock/backend/internal/application/identity"
)

// NotificationHandler serves user notifications
type NotificationHandler struct {
	BaseHandler
	notificationService *identity.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *identity.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Create godoc
// @Summary      Create a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateNotificationRequest true "Notification"
// @Success      201 {object} APIResponse[identity.NotificationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req identity.CreateNotificationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, n)
}

// List godoc
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        user_id   query string false "Recipient" format(uuid)
// @Param        is_read   query bool   false "Read flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]identity.NotificationResponse]
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var filter identity.NotificationListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.notificationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListForUser godoc
// @Summary      List a user's notifications
// @Tags         notifications
// @Produce      json
// @Param        user_id   path  string true  "Recipient" format(uuid)
// @Param        is_read   query bool   false "Read flag"
// @Success      200 {object} APIResponse[[]identity.NotificationResponse]
// @Security     BearerAuth
// @Router       /notifications/user/{user_id} [get]
func (h *NotificationHandler) ListForUser(c *gin.Context) {
	userID, ok := h.ParamUUID(c, "user_id")
	if !ok {
		return
	}
	var filter identity.NotificationListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.notificationService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Description  Only the recipient can mark their notification
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      200 {object} APIResponse[identity.NotificationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, n)
}

// Delete godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Param        id path string true "Notification ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
