package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/medstock/backend/internal/application/audit"
	retentionapp "github.com/medstock/backend/internal/application/retention"
	"github.com/medstock/backend/internal/domain/retention"
	"github.com/medstock/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CleanupHandler exposes the retention job to administrators
type CleanupHandler struct {
	BaseHandler
	cleanupService *retentionapp.CleanupService
	deletionLogs   *audit.DeletionLogService
}

// NewCleanupHandler creates a new CleanupHandler
func NewCleanupHandler(cleanupService *retentionapp.CleanupService, deletionLogs *audit.DeletionLogService) *CleanupHandler {
	return &CleanupHandler{cleanupService: cleanupService, deletionLogs: deletionLogs}
}

// Run godoc
// @Summary      Run the retention cleanup
// @Description  Purges soft-deleted rows older than their table's retention and logs each deletion.
// @Description  Answers 409 while another run holds the lock.
// @Tags         cleanup
// @Produce      json
// @Success      200 {object} APIResponse[retention.Manifest]
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cleanup/run [post]
func (h *CleanupHandler) Run(c *gin.Context) {
	h.run(c, false)
}

// Test godoc
// @Summary      Dry-run the retention cleanup
// @Description  Lists what a real run would purge without changing anything
// @Tags         cleanup
// @Produce      json
// @Success      200 {object} APIResponse[retention.Manifest]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cleanup/test [get]
func (h *CleanupHandler) Test(c *gin.Context) {
	h.run(c, true)
}

func (h *CleanupHandler) run(c *gin.Context, dryRun bool) {
	ctx := c.Request.Context()
	manifest, err := h.cleanupService.Run(ctx, retentionapp.RunOptions{
		DryRun:  dryRun,
		Trigger: retention.TriggerManual,
	})
	if err != nil {
		if manifest != nil {
			logger.L(ctx).Warn("Cleanup run ended early",
				zap.String("run_id", manifest.RunID.String()),
				zap.Int("purged", manifest.Totals.Purged),
			)
		}
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, manifest)
}

// Status godoc
// @Summary      Retention job status
// @Description  Whether a run is in progress, the policies, the last manifest and the next scheduled run
// @Tags         cleanup
// @Produce      json
// @Success      200 {object} APIResponse[retentionapp.Status]
// @Security     BearerAuth
// @Router       /cleanup/status [get]
func (h *CleanupHandler) Status(c *gin.Context) {
	h.Success(c, h.cleanupService.Status())
}

// DeletionLogs godoc
// @Summary      List purged rows
// @Description  Deletion log written by cleanup runs, latest first
// @Tags         cleanup
// @Produce      json
// @Param        table_name query string false "Table"
// @Param        from_date  query string false "From (YYYY-MM-DD)"
// @Param        to_date    query string false "To (YYYY-MM-DD, inclusive)"
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]audit.DeletionLogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cleanup/deletion-logs [get]
func (h *CleanupHandler) DeletionLogs(c *gin.Context) {
	var filter audit.DeletionLogFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		h.BadRequest(c, "from_date must not be after to_date")
		return
	}

	entries, total, err := h.deletionLogs.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
