package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/report"
	"github.com/medstock/backend/internal/domain/shared"
)

// ReportQuery holds the optional report filters
type ReportQuery struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	VendorID string     `form:"vendor_id" binding:"omitempty,uuid"`
	Format   string     `form:"format" binding:"omitempty,oneof=json xlsx"`
}

func (q ReportQuery) toFilter() (report.Filter, error) {
	f := report.Filter{From: q.From, To: shared.EndOfDay(q.To)}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, shared.NewValidationError("from", "from must not be after to")
	}
	if q.VendorID != "" {
		id, err := uuid.Parse(q.VendorID)
		if err != nil {
			return f, shared.NewValidationError("vendor_id", "invalid vendor_id")
		}
		f.VendorID = &id
	}
	return f, nil
}

// Result is a generated report
type Result struct {
	Type        report.Type `json:"type"`
	GeneratedAt time.Time   `json:"generated_at"`
	Count       int         `json:"count"`
	Rows        any         `json:"rows"`
}

// File is a rendered report download
type File struct {
	Name        string
	ContentType string
	Data        []byte
	ArchiveKey  string
}
