package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/report"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Inventory(ctx context.Context, f report.Filter) ([]report.InventoryRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]report.InventoryRow)
	return rows, args.Error(1)
}

func (m *MockReportRepository) PendingPOs(ctx context.Context, f report.Filter) ([]report.PendingPORow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]report.PendingPORow)
	return rows, args.Error(1)
}

func (m *MockReportRepository) VendorPerformance(ctx context.Context, f report.Filter) ([]report.VendorPerformanceRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]report.VendorPerformanceRow)
	return rows, args.Error(1)
}

type failingArchive struct{}

func (failingArchive) Put(context.Context, string, []byte, string) error {
	return errors.New("bucket unreachable")
}

func fixedNow() time.Time {
	return time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)
}

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown type", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), nil)
		_, err := svc.Generate(ctx, "sales", ReportQuery{})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("vendor performance passes the vendor filter", func(t *testing.T) {
		repo := new(MockReportRepository)
		vendorID := uuid.New()
		rows := []report.VendorPerformanceRow{{VendorID: vendorID, VendorName: "Acme", OrderCount: 2, TotalValue: decimal.NewFromInt(3400)}}
		repo.On("VendorPerformance", ctx, mock.MatchedBy(func(f report.Filter) bool {
			return f.VendorID != nil && *f.VendorID == vendorID
		})).Return(rows, nil)

		svc := NewReportService(repo, nil)
		result, err := svc.Generate(ctx, "vendor-performance", ReportQuery{VendorID: vendorID.String()})
		require.NoError(t, err)
		assert.Equal(t, report.TypeVendorPerformance, result.Type)
		assert.Equal(t, 1, result.Count)
		repo.AssertExpectations(t)
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("PendingPOs", ctx, mock.Anything).Return(nil, nil)

		svc := NewReportService(repo, nil)
		result, err := svc.Generate(ctx, "pending-pos", ReportQuery{})
		require.NoError(t, err)
		assert.Equal(t, []report.PendingPORow{}, result.Rows)
	})

	t.Run("from after to", func(t *testing.T) {
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		svc := NewReportService(new(MockReportRepository), nil)
		_, err := svc.Generate(ctx, "inventory", ReportQuery{From: &from, To: &to})
		assert.ErrorIs(t, err, shared.NewValidationError("from", ""))
	})
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()
	rows := []report.InventoryRow{{
		ItemCode: "PARA500", ItemName: "Paracetamol 500mg",
		LocationCode: "A-01", LocationName: "Rack A1",
		Quantity: decimal.NewFromInt(120), LastUpdated: fixedNow(),
	}}

	t.Run("renders and archives", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("Inventory", ctx, mock.Anything).Return(rows, nil)
		archive := storage.NewMemoryArchive()

		svc := NewReportService(repo, archive)
		svc.now = fixedNow
		file, err := svc.Export(ctx, "inventory", ReportQuery{})
		require.NoError(t, err)

		assert.Equal(t, "inventory-20250701T093000Z.xlsx", file.Name)
		assert.Equal(t, "reports/inventory/20250701T093000Z.xlsx", file.ArchiveKey)
		assert.Equal(t, []string{file.ArchiveKey}, archive.Keys())

		wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer wb.Close()
		code, err := wb.GetCellValue("Inventory", "A2")
		require.NoError(t, err)
		assert.Equal(t, "PARA500", code)
	})

	t.Run("archive failure still returns the file", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("Inventory", ctx, mock.Anything).Return(rows, nil)

		svc := NewReportService(repo, failingArchive{})
		file, err := svc.Export(ctx, "inventory", ReportQuery{})
		require.NoError(t, err)
		assert.NotEmpty(t, file.Data)
		assert.Empty(t, file.ArchiveKey)
	})

	t.Run("query error", func(t *testing.T) {
		repo := new(MockReportRepository)
		repo.On("Inventory", ctx, mock.Anything).Return(nil, shared.NewInternalError("query failed", nil))

		svc := NewReportService(repo, nil)
		_, err := svc.Export(ctx, "inventory", ReportQuery{})
		assert.Error(t, err)
	})
}
