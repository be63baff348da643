package persistence

import (
	"context"

	appinv "github.com/medstock/backend/internal/application/inventory"
	"github.com/medstock/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. The transaction is rolled
// back when fn returns an error and committed otherwise.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// MRNRepo returns the MRN repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MRNRepo() inventory.MRNRepository {
	return NewGormMRNRepository(r.tx)
}

// StockRecordRepo returns the stock record repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockRecordRepo() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// BinningLogRepo returns the binning log repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BinningLogRepo() inventory.BinningLogRepository {
	return NewGormBinningLogRepository(r.tx)
}

var (
	_ appinv.TransactionScope          = (*GormTransactionScope)(nil)
	_ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
