package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BinningService puts received stock away into locations
type BinningService struct {
	txScope      TransactionScope
	logRepo      inventory.BinningLogRepository
	locationRepo inventory.LocationRepository
	recorder     appaudit.Recorder
	logger       *zap.Logger
	now          func() time.Time
}

// NewBinningService creates a new BinningService
func NewBinningService(
	txScope TransactionScope,
	logRepo inventory.BinningLogRepository,
	locationRepo inventory.LocationRepository,
	recorder appaudit.Recorder,
	logger *zap.Logger,
) *BinningService {
	return &BinningService{
		txScope:      txScope,
		logRepo:      logRepo,
		locationRepo: locationRepo,
		recorder:     recorder,
		logger:       logger,
		now:          time.Now,
	}
}

// Bin adds every item of the MRN to the stock at the destination, marks the
// MRN binned and writes a binning log, all in one transaction.
func (s *BinningService) Bin(ctx context.Context, req BinRequest) (*BinningLogResponse, error) {
	if _, err := s.locationRepo.FindByID(ctx, req.ToLocationID); err != nil {
		return nil, referenceError(err, "to_location_id", "location does not exist")
	}
	var userID uuid.UUID
	if actor := appaudit.ActorFrom(ctx); actor != nil {
		userID = *actor
	}
	date := s.now()
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}

	var entry *inventory.BinningLog
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		mrn, err := repos.MRNRepo().FindByIDForUpdate(ctx, req.MRNID)
		if err != nil {
			return referenceError(err, "mrn_id", "MRN does not exist")
		}
		if err := mrn.CanBin(); err != nil {
			return err
		}

		stock := repos.StockRecordRepo()
		for _, item := range mrn.Items {
			if err := receive(ctx, stock, item, req.ToLocationID); err != nil {
				return err
			}
		}

		if err := mrn.UpdateStatus(inventory.MRNStatusBinned, nil); err != nil {
			return err
		}
		if err := repos.MRNRepo().MarkBinned(ctx, mrn); err != nil {
			return err
		}

		entry, err = inventory.NewBinningLog(mrn.ID, req.ToLocationID, userID, date)
		if err != nil {
			return err
		}
		return repos.BinningLogRepo().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MRN binned",
		zap.String("mrn_id", req.MRNID.String()),
		zap.String("to_location_id", req.ToLocationID.String()))
	s.recorder.Record(ctx, audit.ActionBin, "binning_logs", entry.ID.String(), "binned MRN "+req.MRNID.String())

	resp := ToBinningLogResponse(entry)
	return &resp, nil
}

// List returns binning logs newest first
func (s *BinningService) List(ctx context.Context, filter BinningLogListFilter) ([]BinningLogResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "transaction_date", "desc")
	if filter.ItemID != "" {
		f.Filters["item_id"] = filter.ItemID
	}
	if filter.LocationID != "" {
		f.Filters["location_id"] = filter.LocationID
	}
	if filter.UserID != "" {
		f.Filters["user_id"] = filter.UserID
	}
	f.From, f.To = filter.FromDate, shared.EndOfDay(filter.ToDate)

	logs, total, err := s.logRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]BinningLogResponse, len(logs))
	for i := range logs {
		out[i] = ToBinningLogResponse(&logs[i])
	}
	return out, total, nil
}

// receive adds the item's quantity to the stock at the location. The
// increment happens in SQL so concurrent receipts never overwrite each other.
func receive(ctx context.Context, stock inventory.StockRecordRepository, item inventory.MRNItem, locationID uuid.UUID) error {
	rec, err := inventory.NewStockRecord(item.ItemID, locationID, decimal.Zero)
	if err != nil {
		return err
	}
	if err := rec.Receive(item.Quantity); err != nil {
		return err
	}
	return stock.AddQuantity(ctx, rec)
}

// lineError prefixes the field of an item validation error with its position
func lineError(index int, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == shared.CodeValidation {
		return shared.NewValidationError(fmt.Sprintf("items[%d].%s", index, de.Field), de.Message)
	}
	return err
}
