package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/retention"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errRowVanished = errors.New("row no longer eligible for purge")

// GormRetentionStore implements retention.Store using GORM. Table and column
// names come from validated policies and are quoted by the dialect.
type GormRetentionStore struct {
	db               *gorm.DB
	statementTimeout time.Duration
}

// NewGormRetentionStore creates a new GormRetentionStore. A zero timeout
// leaves statements bounded only by the caller's context.
func NewGormRetentionStore(db *gorm.DB, statementTimeout time.Duration) *GormRetentionStore {
	return &GormRetentionStore{db: db, statementTimeout: statementTimeout}
}

func (s *GormRetentionStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.statementTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.statementTimeout)
}

// FindCandidates returns the keys of soft-deleted rows last updated strictly
// before cutoff, in ascending key order
func (s *GormRetentionStore) FindCandidates(ctx context.Context, p retention.Policy, cutoff time.Time) ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var keys []string
	err := s.db.WithContext(ctx).
		Table(p.Table).
		Where("is_deleted = ? AND updated_at < ?", true, cutoff).
		Order(clause.OrderByColumn{Column: clause.Column{Name: p.KeyColumn}}).
		Pluck(p.KeyColumn, &keys).Error
	if err != nil {
		return nil, translateError(err, p.Table)
	}
	return keys, nil
}

// Purge writes the deletion log row and deletes the row in one transaction.
// When the eligibility guard no longer matches, the transaction is rolled
// back and Vanished is returned.
func (s *GormRetentionStore) Purge(ctx context.Context, p retention.Policy, key string, cutoff, now time.Time) (retention.PurgeOutcome, error) {
	if err := p.Validate(); err != nil {
		return retention.Vanished, err
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := audit.NewDeletionLog(p.Table, key, audit.DeletedBySystem, now)
		if err := tx.Create(models.DeletionLogModelFromDomain(entry)).Error; err != nil {
			return err
		}
		result := tx.Exec("DELETE FROM ? WHERE ? = ? AND is_deleted = ? AND updated_at < ?",
			clause.Table{Name: p.Table}, clause.Column{Name: p.KeyColumn}, key, true, cutoff)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errRowVanished
		}
		return nil
	})
	switch {
	case err == nil:
		return retention.Purged, nil
	case errors.Is(err, errRowVanished):
		return retention.Vanished, nil
	}
	return retention.Vanished, translateError(err, p.Table)
}

var _ retention.Store = (*GormRetentionStore)(nil)
