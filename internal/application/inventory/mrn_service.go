package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// MRNService records goods received against vendor invoices
type MRNService struct {
	mrnRepo    inventory.MRNRepository
	vendorRepo partner.VendorRepository
	orderRepo  trade.PurchaseOrderRepository
	recorder   appaudit.Recorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewMRNService creates a new MRNService
func NewMRNService(
	mrnRepo inventory.MRNRepository,
	vendorRepo partner.VendorRepository,
	orderRepo trade.PurchaseOrderRepository,
	recorder appaudit.Recorder,
	logger *zap.Logger,
) *MRNService {
	return &MRNService{
		mrnRepo:    mrnRepo,
		vendorRepo: vendorRepo,
		orderRepo:  orderRepo,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
}

// Create inserts the MRN and its items together
func (s *MRNService) Create(ctx context.Context, req CreateMRNRequest) (*MRNResponse, error) {
	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, referenceError(err, "vendor_id", "vendor does not exist")
	}
	if req.POID != nil {
		if _, err := s.orderRepo.FindByID(ctx, *req.POID); err != nil {
			return nil, referenceError(err, "po_id", "purchase order does not exist")
		}
	}

	now := s.now()
	number := req.MRNNumber
	if number == "" {
		number = inventory.GenerateMRNNumber(now)
	}
	receipt := now
	if req.ReceiptDate != nil {
		receipt = *req.ReceiptDate
	}
	mrn, err := inventory.NewMRN(number, req.VendorID, receipt)
	if err != nil {
		return nil, err
	}
	mrn.POID = req.POID
	mrn.InvoiceNumber = req.InvoiceNumber
	mrn.InvoiceDate = req.InvoiceDate
	mrn.TransactionReference = req.TransactionReference
	mrn.ScannedBy = req.ScannedBy
	mrn.ReceivedBy = req.ReceivedBy
	mrn.Remarks = req.Remarks
	if req.TotalInvoiceValue != nil {
		if req.TotalInvoiceValue.IsNegative() {
			return nil, shared.NewValidationError("total_invoice_value", "total_invoice_value cannot be negative")
		}
		mrn.TotalInvoiceValue = *req.TotalInvoiceValue
	}
	if err := mrn.SetTaxDetails(req.TaxDetails); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := mrn.UpdateStatus(inventory.MRNStatus(req.Status), nil); err != nil {
			return nil, err
		}
	}
	for i, it := range req.Items {
		err := mrn.AddItem(inventory.MRNItem{
			ItemID:              it.ItemID,
			Quantity:            orZero(it.Quantity),
			BatchNumber:         it.BatchNumber,
			Price:               orZero(it.Price),
			UOM:                 it.UOM,
			ExpiryDate:          it.ExpiryDate,
			ManufactureDate:     it.ManufactureDate,
			ReceivingLocationID: it.ReceivingLocationID,
		})
		if err != nil {
			return nil, lineError(i, err)
		}
	}

	if err := s.mrnRepo.Create(ctx, mrn); err != nil {
		return nil, err
	}
	s.logger.Info("MRN created", zap.String("mrn_number", mrn.MRNNumber), zap.Int("items", len(mrn.Items)))
	s.recorder.Record(ctx, audit.ActionCreate, "mrns", mrn.ID.String(), "created "+mrn.MRNNumber)

	resp := ToMRNResponse(mrn)
	return &resp, nil
}

// GetByID returns the MRN with its items
func (s *MRNService) GetByID(ctx context.Context, id uuid.UUID) (*MRNResponse, error) {
	mrn, err := s.mrnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMRNResponse(mrn)
	return &resp, nil
}

// List returns MRN headers
func (s *MRNService) List(ctx context.Context, filter MRNListFilter) ([]MRNResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "")
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.VendorID != "" {
		f.Filters["vendor_id"] = filter.VendorID
	}
	if filter.POID != "" {
		f.Filters["po_id"] = filter.POID
	}
	f.From, f.To = filter.FromDate, shared.EndOfDay(filter.ToDate)

	mrns, total, err := s.mrnRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]MRNResponse, len(mrns))
	for i := range mrns {
		out[i] = ToMRNResponse(&mrns[i])
	}
	return out, total, nil
}

// Update changes the status and remarks of an MRN
func (s *MRNService) Update(ctx context.Context, id uuid.UUID, req UpdateMRNRequest) (*MRNResponse, error) {
	mrn, err := s.mrnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mrn.UpdateStatus(inventory.MRNStatus(req.Status), req.Remarks); err != nil {
		return nil, err
	}
	if err := s.mrnRepo.Update(ctx, mrn); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "mrns", id.String(), "status "+req.Status)
	resp := ToMRNResponse(mrn)
	return &resp, nil
}

// Delete removes the MRN with its items and binning logs
func (s *MRNService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.mrnRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "mrns", id.String(), "")
	return nil
}
