package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// LocationRepository defines persistence operations for locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, int64, error)
	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
}

// StockRecordRepository defines persistence operations for stock records
type StockRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)
	FindByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*StockRecord, error)
	// FindLines lists joined stock lines; filters: item_id, location_id
	FindLines(ctx context.Context, filter shared.Filter) ([]StockLine, int64, error)
	// Create fails with a conflict when the (item, location) pair already exists
	Create(ctx context.Context, record *StockRecord) error
	Update(ctx context.Context, record *StockRecord) error
	// AddQuantity adds the record's quantity to the stored row for its
	// (item, location) pair in one statement, inserting the row when missing
	AddQuantity(ctx context.Context, record *StockRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockRuleRepository defines persistence operations for stock rules
type StockRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockRule, error)
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*StockRule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRule, int64, error)
	Save(ctx context.Context, rule *StockRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindReorderCandidates returns items whose summed stock is below their
	// rule's rol, lowest stock first
	FindReorderCandidates(ctx context.Context) ([]ReorderCandidate, error)
}

// MRNRepository defines persistence operations for MRNs
type MRNRepository interface {
	// Create inserts the MRN together with its items
	Create(ctx context.Context, mrn *MRN) error
	FindByID(ctx context.Context, id uuid.UUID) (*MRN, error)
	// FindByIDForUpdate loads an MRN and holds a row lock on it until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*MRN, error)
	// FindAll lists MRN headers; filters: status, vendor_id, po_id
	FindAll(ctx context.Context, filter shared.Filter) ([]MRN, int64, error)
	Update(ctx context.Context, mrn *MRN) error
	// MarkBinned stores the binned status. It is a conflict when the stored
	// MRN is already binned.
	MarkBinned(ctx context.Context, mrn *MRN) error
	// Delete removes binning logs, items and the MRN itself
	Delete(ctx context.Context, id uuid.UUID) error
}

// BinningLogRepository defines persistence operations for binning logs
type BinningLogRepository interface {
	Create(ctx context.Context, log *BinningLog) error
	// FindAll lists logs; filters: item_id, location_id, user_id, From/To on transaction_date
	FindAll(ctx context.Context, filter shared.Filter) ([]BinningLog, int64, error)
}
