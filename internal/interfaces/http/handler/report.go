package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/medstock/backend/internal/application/report"
)

// ReportHandler serves the operational reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate godoc
// @Summary      Run a report
// @Description  inventory, pending-pos or vendor-performance. format=xlsx downloads a workbook.
// @Tags         reports
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type      path  string true  "Report type" Enums(inventory, pending-pos, vendor-performance)
// @Param        from      query string false "From (YYYY-MM-DD)"
// @Param        to        query string false "To (YYYY-MM-DD)"
// @Param        vendor_id query string false "Vendor" format(uuid)
// @Param        format    query string false "Output" Enums(json, xlsx)
// @Success      200 {object} APIResponse[reportapp.Result]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/{type} [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	var q reportapp.ReportQuery
	if !h.BindQuery(c, &q) {
		return
	}
	reportType := c.Param("type")

	if q.Format == "xlsx" {
		file, err := h.reportService.Export(c.Request.Context(), reportType, q)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.Name))
		if file.ArchiveKey != "" {
			c.Header("X-Archive-Key", file.ArchiveKey)
		}
		c.Data(http.StatusOK, file.ContentType, file.Data)
		return
	}

	result, err := h.reportService.Generate(c.Request.Context(), reportType, q)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
