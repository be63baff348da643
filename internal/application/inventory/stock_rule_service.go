package inventory

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
)

// StockRuleService manages replenishment rules and the reorder monitor
type StockRuleService struct {
	ruleRepo inventory.StockRuleRepository
	itemRepo catalog.ItemRepository
	recorder appaudit.Recorder
}

// NewStockRuleService creates a new StockRuleService
func NewStockRuleService(ruleRepo inventory.StockRuleRepository, itemRepo catalog.ItemRepository, recorder appaudit.Recorder) *StockRuleService {
	return &StockRuleService{ruleRepo: ruleRepo, itemRepo: itemRepo, recorder: recorder}
}

// Create adds the rule of an item. An item has at most one rule.
func (s *StockRuleService) Create(ctx context.Context, req StockRuleRequest) (*StockRuleResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, referenceError(err, "item_id", "item does not exist")
	}
	if _, err := s.ruleRepo.FindByItemID(ctx, req.ItemID); err == nil {
		return nil, shared.NewConflictError("Stock rule for this item already exists")
	} else if !shared.IsNotFound(err) {
		return nil, err
	}

	rule, err := inventory.NewStockRule(req.ItemID, req.Params())
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "stock_rules", rule.ID.String(), "rol "+rule.ROL.String())
	resp := ToStockRuleResponse(rule)
	return &resp, nil
}

// GetByID retrieves a stock rule
func (s *StockRuleService) GetByID(ctx context.Context, id uuid.UUID) (*StockRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStockRuleResponse(rule)
	return &resp, nil
}

// List retrieves stock rules
func (s *StockRuleService) List(ctx context.Context, filter StockRuleListFilter) ([]StockRuleResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "")
	if filter.ItemID != "" {
		f.Filters["item_id"] = filter.ItemID
	}
	rules, total, err := s.ruleRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]StockRuleResponse, len(rules))
	for i := range rules {
		out[i] = ToStockRuleResponse(&rules[i])
	}
	return out, total, nil
}

// Update replaces the parameters of a rule. The item cannot change.
func (s *StockRuleService) Update(ctx context.Context, id uuid.UUID, req StockRuleRequest) (*StockRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ItemID != uuid.Nil && req.ItemID != rule.ItemID {
		return nil, shared.NewValidationError("item_id", "item_id of a stock rule cannot change")
	}
	if err := rule.Apply(req.Params()); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "stock_rules", id.String(), "rol "+rule.ROL.String())
	resp := ToStockRuleResponse(rule)
	return &resp, nil
}

// Delete removes a stock rule
func (s *StockRuleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "stock_rules", id.String(), "")
	return nil
}

// ReorderNeeded lists items whose total stock is below their reorder level,
// lowest stock first
func (s *StockRuleService) ReorderNeeded(ctx context.Context) ([]inventory.ReorderCandidate, error) {
	candidates, err := s.ruleRepo.FindReorderCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []inventory.ReorderCandidate{}
	}
	return candidates, nil
}
