package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase orders and their priced lines
type PurchaseOrderService struct {
	orderRepo  trade.PurchaseOrderRepository
	vendorRepo partner.VendorRepository
	itemRepo   catalog.ItemRepository
	recorder   appaudit.Recorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	vendorRepo partner.VendorRepository,
	itemRepo catalog.ItemRepository,
	recorder appaudit.Recorder,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:  orderRepo,
		vendorRepo: vendorRepo,
		itemRepo:   itemRepo,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates and prices every line, then stores the order and its
// lines together. Nothing is written when any line is invalid.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("items", "at least one item is required")
	}

	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, referenceError(err, "vendor_id", "vendor does not exist")
	}

	now := s.now()
	orderDate := now
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	order, err := trade.NewPurchaseOrder(trade.GeneratePONumber(now), vendor.ID, orderDate)
	if err != nil {
		return nil, err
	}
	if actor := appaudit.ActorFrom(ctx); actor != nil {
		order.SetCreatedBy(*actor)
	}

	for i, line := range req.Items {
		if _, err := order.AddItem(line.ItemID, line.LineInput()); err != nil {
			return nil, lineError(i, err)
		}
	}
	if err := s.ensureItemsExist(ctx, req.Items); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order created",
		zap.String("po_number", order.PONumber),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.String()))
	s.recorder.Record(ctx, audit.ActionCreate, "purchase_orders", order.ID.String(), "created "+order.PONumber)

	resp := ToPurchaseOrderResponse(order)
	resp.VendorName = vendor.VendorName
	return &resp, nil
}

// GetByID returns the order with its lines and the vendor name
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	resp.VendorName = s.vendorName(ctx, order.VendorID)
	return &resp, nil
}

// List retrieves order headers with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.VendorID != "" {
		f.Filters["vendor_id"] = filter.VendorID
	}
	f.From, f.To = filter.FromDate, shared.EndOfDay(filter.ToDate)

	orders, total, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return out, total, nil
}

// Update changes the status and/or order date
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := order.UpdateStatus(trade.PurchaseOrderStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.OrderDate != nil {
		if err := order.SetOrderDate(*req.OrderDate); err != nil {
			return nil, err
		}
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "purchase_orders", id.String(), "status "+order.Status.String())

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// Delete soft-deletes an order
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	order.Delete()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "purchase_orders", id.String(), "deleted "+order.PONumber)
	return nil
}

// ListItems returns the lines of an order
func (s *PurchaseOrderService) ListItems(ctx context.Context, poID uuid.UUID) ([]PurchaseOrderItemResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, poID); err != nil {
		return nil, err
	}
	items, err := s.orderRepo.FindItems(ctx, poID)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseOrderItemResponse, len(items))
	for i := range items {
		out[i] = ToPurchaseOrderItemResponse(&items[i])
	}
	return out, nil
}

// AddItem prices a new line on a pending order and returns the updated order
func (s *PurchaseOrderService) AddItem(ctx context.Context, poID uuid.UUID, req PurchaseOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	item, err := order.AddItem(req.ItemID, req.LineInput())
	if err != nil {
		return nil, err
	}
	if err := s.ensureItemsExist(ctx, []PurchaseOrderItemRequest{req}); err != nil {
		return nil, err
	}
	if err := s.orderRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "purchase_order_items", item.ID.String(), "added to "+order.PONumber)
	return s.GetByID(ctx, poID)
}

// UpdateItem reprices a line of a pending order and returns the updated order
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdatePurchaseOrderItemRequest) (*PurchaseOrderResponse, error) {
	item, order, err := s.editableLine(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.Reprice(req.LineInput()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "purchase_order_items", itemID.String(), "repriced on "+order.PONumber)
	return s.GetByID(ctx, order.ID)
}

// RemoveItem deletes a line of a pending order and returns the updated order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	item, order, err := s.editableLine(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.RemoveItem(ctx, item); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "purchase_order_items", itemID.String(), "removed from "+order.PONumber)
	return s.GetByID(ctx, order.ID)
}

func (s *PurchaseOrderService) editableLine(ctx context.Context, itemID uuid.UUID) (*trade.PurchaseOrderItem, *trade.PurchaseOrder, error) {
	item, err := s.orderRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, item.POID)
	if err != nil {
		return nil, nil, err
	}
	if err := order.EnsureEditable(); err != nil {
		return nil, nil, err
	}
	return item, order, nil
}

func (s *PurchaseOrderService) ensureItemsExist(ctx context.Context, lines []PurchaseOrderItemRequest) error {
	seen := make(map[uuid.UUID]bool, len(lines))
	for i, line := range lines {
		if seen[line.ItemID] {
			continue
		}
		seen[line.ItemID] = true
		if _, err := s.itemRepo.FindByID(ctx, line.ItemID); err != nil {
			return lineError(i, referenceError(err, "item_id", "item does not exist"))
		}
	}
	return nil
}

func (s *PurchaseOrderService) vendorName(ctx context.Context, vendorID uuid.UUID) string {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if !shared.IsNotFound(err) {
			s.logger.Warn("Failed to load vendor for purchase order", zap.String("vendor_id", vendorID.String()), zap.Error(err))
		}
		return ""
	}
	return vendor.VendorName
}

// lineError prefixes the field of a line validation error with its position
func lineError(index int, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == shared.CodeValidation {
		return shared.NewValidationError(fmt.Sprintf("items[%d].%s", index, de.Field), de.Message)
	}
	return err
}

// referenceError turns a missing referenced row into a validation error on field
func referenceError(err error, field, message string) error {
	if shared.IsNotFound(err) {
		return shared.NewValidationError(field, message)
	}
	return err
}
