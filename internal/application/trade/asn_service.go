package trade

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
)

// ASNService handles advance shipping notes
type ASNService struct {
	asnRepo   trade.ASNRepository
	orderRepo trade.PurchaseOrderRepository
	recorder  appaudit.Recorder
}

// NewASNService creates a new ASNService
func NewASNService(asnRepo trade.ASNRepository, orderRepo trade.PurchaseOrderRepository, recorder appaudit.Recorder) *ASNService {
	return &ASNService{asnRepo: asnRepo, orderRepo: orderRepo, recorder: recorder}
}

// Create announces a delivery against an existing purchase order. The vendor
// is taken from the order.
func (s *ASNService) Create(ctx context.Context, req CreateASNRequest) (*ASNResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.POID)
	if err != nil {
		return nil, referenceError(err, "po_id", "purchase order does not exist")
	}
	note, err := trade.NewAdvanceShippingNote(order.ID, order.VendorID, req.ExpectedDeliveryDate, req.Remarks)
	if err != nil {
		return nil, err
	}
	if err := s.asnRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "asns", note.ID.String(), "for "+order.PONumber)

	resp := ToASNResponse(note)
	return &resp, nil
}

// GetByID retrieves a shipping note
func (s *ASNService) GetByID(ctx context.Context, id uuid.UUID) (*ASNResponse, error) {
	note, err := s.asnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToASNResponse(note)
	return &resp, nil
}

// List retrieves shipping notes filtered by order or vendor
func (s *ASNService) List(ctx context.Context, filter ASNListFilter) ([]ASNResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "")
	if filter.POID != "" {
		f.Filters["po_id"] = filter.POID
	}
	if filter.VendorID != "" {
		f.Filters["vendor_id"] = filter.VendorID
	}
	notes, total, err := s.asnRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ASNResponse, len(notes))
	for i := range notes {
		out[i] = ToASNResponse(&notes[i])
	}
	return out, total, nil
}

// Update reschedules a delivery
func (s *ASNService) Update(ctx context.Context, id uuid.UUID, req UpdateASNRequest) (*ASNResponse, error) {
	note, err := s.asnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Reschedule(req.ExpectedDeliveryDate, req.Remarks)
	if err := s.asnRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "asns", id.String(), "")

	resp := ToASNResponse(note)
	return &resp, nil
}

// Delete removes a shipping note
func (s *ASNService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.asnRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "asns", id.String(), "")
	return nil
}
