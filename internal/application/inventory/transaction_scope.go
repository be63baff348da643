package inventory

import (
	"context"

	"github.com/medstock/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// All repository operations inside Execute share one database transaction and
// are committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a transaction. An error from fn rolls back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories touched by receiving
// and binning, scoped to the current transaction.
type TransactionalRepositories interface {
	MRNRepo() inventory.MRNRepository
	StockRecordRepo() inventory.StockRecordRepository
	BinningLogRepo() inventory.BinningLogRepository
}

// NoOpTransactionScope runs fn against plain repositories without a
// transaction. Used by tests.
type NoOpTransactionScope struct {
	mrnRepo     inventory.MRNRepository
	stockRepo   inventory.StockRecordRepository
	binningRepo inventory.BinningLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	mrnRepo inventory.MRNRepository,
	stockRepo inventory.StockRecordRepository,
	binningRepo inventory.BinningLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{mrnRepo: mrnRepo, stockRepo: stockRepo, binningRepo: binningRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MRNRepo returns the MRN repository.
func (s *NoOpTransactionScope) MRNRepo() inventory.MRNRepository { return s.mrnRepo }

// StockRecordRepo returns the stock record repository.
func (s *NoOpTransactionScope) StockRecordRepo() inventory.StockRecordRepository { return s.stockRepo }

// BinningLogRepo returns the binning log repository.
func (s *NoOpTransactionScope) BinningLogRepo() inventory.BinningLogRepository { return s.binningRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
