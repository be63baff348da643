package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMRNRepository implements MRNRepository using GORM
type GormMRNRepository struct {
	db *gorm.DB
}

// NewGormMRNRepository creates a new GormMRNRepository
func NewGormMRNRepository(db *gorm.DB) *GormMRNRepository {
	return &GormMRNRepository{db: db}
}

// Create inserts the MRN and its items in one transaction
func (r *GormMRNRepository) Create(ctx context.Context, mrn *inventory.MRN) error {
	m := models.MRNModelFromDomain(mrn)
	items := m.Items
	m.Items = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			return tx.Create(&items).Error
		}
		return nil
	})
	return translateError(err, "MRN")
}

// FindByID loads an MRN with its items
func (r *GormMRNRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.MRN, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads an MRN with SELECT ... FOR UPDATE. SQLite has no
// row locks and serializes writers instead, so the clause is left out there.
func (r *GormMRNRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.MRN, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return r.find(q, id)
}

func (r *GormMRNRepository) find(q *gorm.DB, id uuid.UUID) (*inventory.MRN, error) {
	var m models.MRNModel
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "MRN")
	}
	return m.ToDomain(), nil
}

// FindAll lists MRN headers
func (r *GormMRNRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.MRN, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.db.WithContext(ctx).Model(&models.MRNModel{}), filter, "status", "vendor_id", "po_id")
		q = dateRange(q, "receipt_date", filter)
		return search(q, filter.Search, "mrn_number", "invoice_number")
	}
	rows, total, err := listPage[models.MRNModel](scope, filter, MRNSortFields, "created_at", "MRN")
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.MRN, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Update persists the status and remarks of an MRN
func (r *GormMRNRepository) Update(ctx context.Context, mrn *inventory.MRN) error {
	result := r.db.WithContext(ctx).Model(&models.MRNModel{}).
		Where("id = ?", mrn.ID).
		Updates(map[string]any{
			"status":     mrn.Status,
			"remarks":    mrn.Remarks,
			"updated_at": mrn.UpdatedAt,
		})
	return notFoundIfNoRows(result, "MRN")
}

// MarkBinned flips the status to binned only while the stored row is not
// binned yet, so two concurrent binnings of one MRN cannot both succeed
func (r *GormMRNRepository) MarkBinned(ctx context.Context, mrn *inventory.MRN) error {
	result := r.db.WithContext(ctx).Model(&models.MRNModel{}).
		Where("id = ? AND status <> ?", mrn.ID, inventory.MRNStatusBinned).
		Updates(map[string]any{
			"status":     inventory.MRNStatusBinned,
			"updated_at": mrn.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "MRN")
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.MRNModel{}).Where("id = ?", mrn.ID).Count(&n).Error; err != nil {
		return translateError(err, "MRN")
	}
	if n == 0 {
		return shared.NewNotFoundError("MRN")
	}
	return shared.NewConflictError("MRN has already been binned")
}

// Delete removes the MRN's binning logs, its items and the MRN itself in
// one transaction
func (r *GormMRNRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BinningLogModel{}, "mrn_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MRNItemModel{}, "mrn_id = ?", id).Error; err != nil {
			return err
		}
		return notFoundIfNoRows(tx.Delete(&models.MRNModel{}, "id = ?", id), "MRN")
	})
	return translateError(err, "MRN")
}

// GormBinningLogRepository implements BinningLogRepository using GORM
type GormBinningLogRepository struct {
	db *gorm.DB
}

// NewGormBinningLogRepository creates a new GormBinningLogRepository
func NewGormBinningLogRepository(db *gorm.DB) *GormBinningLogRepository {
	return &GormBinningLogRepository{db: db}
}

// Create inserts a binning log
func (r *GormBinningLogRepository) Create(ctx context.Context, log *inventory.BinningLog) error {
	return translateError(r.db.WithContext(ctx).Create(models.BinningLogModelFromDomain(log)).Error, "binning log")
}

// FindAll lists binning logs newest first
func (r *GormBinningLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.BinningLog, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.BinningLogModel{})
		if v, ok := filter.Filters["item_id"]; ok {
			q = q.Where("mrn_id IN (?)",
				r.db.Model(&models.MRNItemModel{}).Select("mrn_id").Where("item_id = ?", v))
		}
		if v, ok := filter.Filters["location_id"]; ok {
			q = q.Where("to_location_id = ?", v)
		}
		if v, ok := filter.Filters["user_id"]; ok {
			q = q.Where("binned_by_user_id = ?", v)
		}
		return dateRange(q, "transaction_date", filter)
	}
	rows, total, err := listPage[models.BinningLogModel](scope, filter, BinningLogSortFields, "transaction_date", "binning log")
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.BinningLog, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

var (
	_ inventory.MRNRepository        = (*GormMRNRepository)(nil)
	_ inventory.BinningLogRepository = (*GormBinningLogRepository)(nil)
)
