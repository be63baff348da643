// Package report generates the operational reports and their XLSX downloads.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/medstock/backend/internal/domain/report"
	"github.com/medstock/backend/internal/infrastructure/export"
	"github.com/medstock/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Archive stores rendered report files
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// ReportService runs report queries and renders them
type ReportService struct {
	repo    report.Repository
	archive Archive
	now     func() time.Time
}

// NewReportService creates a new ReportService. archive may be nil.
func NewReportService(repo report.Repository, archive Archive) *ReportService {
	return &ReportService{repo: repo, archive: archive, now: time.Now}
}

// Generate runs the report named by reportType
func (s *ReportService) Generate(ctx context.Context, reportType string, q ReportQuery) (*Result, error) {
	t, err := report.ParseType(reportType)
	if err != nil {
		return nil, err
	}
	f, err := q.toFilter()
	if err != nil {
		return nil, err
	}

	result := &Result{Type: t, GeneratedAt: s.now()}
	switch t {
	case report.TypeInventory:
		rows, err := s.repo.Inventory(ctx, f)
		if err != nil {
			return nil, err
		}
		result.Rows, result.Count = nonNil(rows), len(rows)
	case report.TypePendingPOs:
		rows, err := s.repo.PendingPOs(ctx, f)
		if err != nil {
			return nil, err
		}
		result.Rows, result.Count = nonNil(rows), len(rows)
	case report.TypeVendorPerformance:
		rows, err := s.repo.VendorPerformance(ctx, f)
		if err != nil {
			return nil, err
		}
		result.Rows, result.Count = nonNil(rows), len(rows)
	}
	return result, nil
}

// Export renders the report as an XLSX workbook and archives a copy when an
// archive is configured. A failed archive upload does not fail the download.
func (s *ReportService) Export(ctx context.Context, reportType string, q ReportQuery) (*File, error) {
	result, err := s.Generate(ctx, reportType, q)
	if err != nil {
		return nil, err
	}

	data, err := export.XLSX(toTable(result))
	if err != nil {
		return nil, err
	}

	stamp := result.GeneratedAt.UTC().Format("20060102T150405Z")
	file := &File{
		Name:        fmt.Sprintf("%s-%s.xlsx", result.Type, stamp),
		ContentType: export.XLSXContentType,
		Data:        data,
	}
	if s.archive == nil {
		return file, nil
	}

	key := fmt.Sprintf("reports/%s/%s.xlsx", result.Type, stamp)
	if err := s.archive.Put(ctx, key, data, export.XLSXContentType); err != nil {
		logger.L(ctx).Warn("Failed to archive report",
			zap.String("type", string(result.Type)),
			zap.String("key", key),
			zap.Error(err))
		return file, nil
	}
	file.ArchiveKey = key
	return file, nil
}

func toTable(r *Result) export.Table {
	switch rows := r.Rows.(type) {
	case []report.InventoryRow:
		t := export.Table{
			Title:   "Inventory",
			Headers: []string{"Item Code", "Item Name", "Location Code", "Location Name", "Quantity", "Last Updated"},
		}
		for _, row := range rows {
			t.Rows = append(t.Rows, []any{
				row.ItemCode, row.ItemName, row.LocationCode, row.LocationName,
				row.Quantity.InexactFloat64(), row.LastUpdated.Format(time.DateTime),
			})
		}
		return t
	case []report.PendingPORow:
		t := export.Table{
			Title:   "Pending POs",
			Headers: []string{"PO Number", "Vendor", "Order Date", "Total Amount"},
		}
		for _, row := range rows {
			t.Rows = append(t.Rows, []any{
				row.PONumber, row.VendorName, row.OrderDate.Format(time.DateOnly), row.TotalAmount.InexactFloat64(),
			})
		}
		return t
	case []report.VendorPerformanceRow:
		t := export.Table{
			Title:   "Vendor Performance",
			Headers: []string{"Vendor", "Completed Orders", "Total Value"},
		}
		for _, row := range rows {
			t.Rows = append(t.Rows, []any{row.VendorName, row.OrderCount, row.TotalValue.InexactFloat64()})
		}
		return t
	}
	return export.Table{Title: string(r.Type)}
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
