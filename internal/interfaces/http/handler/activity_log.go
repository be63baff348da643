package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medstock/backend/internal/application/audit"
)

// ActivityLogHandler serves the audit trail
type ActivityLogHandler struct {
	BaseHandler
	activityService *audit.ActivityLogService
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(activityService *audit.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activityService: activityService}
}

// List godoc
// @Summary      List activity
// @Description  Audit entries, newest first
// @Tags         activity-log
// @Produce      json
// @Param        user_id    query string false "Acting user" format(uuid)
// @Param        table_name query string false "Table"
// @Param        action     query string false "Action"
// @Param        from_date  query string false "From (YYYY-MM-DD)"
// @Param        to_date    query string false "To (YYYY-MM-DD, inclusive)"
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]audit.ActivityLogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /activity-log [get]
func (h *ActivityLogHandler) List(c *gin.Context) {
	var filter audit.ActivityLogFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	entries, total, err := h.activityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
