//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	retentionapp "github.com/medstock/backend/internal/application/retention"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/retention"
	"github.com/medstock/backend/internal/infrastructure/cache"
	"github.com/medstock/backend/internal/infrastructure/persistence"
	"github.com/medstock/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func insertVendor(t *testing.T, tdb *TestDB, code string, deleted bool, updatedAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := tdb.DB.Exec(`
		INSERT INTO vendors (id, vendor_name, vendor_code, is_deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, "Vendor "+code, code, deleted, updatedAt, updatedAt).Error
	require.NoError(t, err, "Failed to insert vendor %s", code)
	return id
}

func insertPurchaseOrder(t *testing.T, tdb *TestDB, number string, vendorID uuid.UUID) {
	t.Helper()
	now := time.Now().UTC()
	err := tdb.DB.Exec(`
		INSERT INTO purchase_orders (id, po_number, vendor_id, order_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New(), number, vendorID, now, now, now).Error
	require.NoError(t, err, "Failed to insert purchase order %s", number)
}

func newCleanupService(t *testing.T, tdb *TestDB, opts ...retentionapp.Option) *retentionapp.CleanupService {
	t.Helper()
	log := zap.NewNop()
	recorder := appaudit.NewActivityRecorder(persistence.NewGormActivityLogRepository(tdb.DB), log)
	opts = append(opts, retentionapp.WithLogger(log))
	svc, err := retentionapp.NewCleanupService(persistence.NewGormRetentionStore(tdb.DB, 5*time.Second), nil, recorder, opts...)
	require.NoError(t, err)
	return svc
}

func vendorResult(t *testing.T, m *retention.Manifest) retention.TableResult {
	t.Helper()
	for _, r := range m.Tables {
		if r.Table == "vendors" {
			return r
		}
	}
	require.Fail(t, "vendors missing from manifest")
	return retention.TableResult{}
}

func newRetentionDB(t *testing.T) *TestDB {
	t.Helper()
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	return tdb
}

func TestRetention_PurgesExpiredSoftDeletedRows(t *testing.T) {
	tdb := newRetentionDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := insertVendor(t, tdb, "OLD", true, now.AddDate(0, -7, 0))
	recent := insertVendor(t, tdb, "NEW", true, now.AddDate(0, -2, 0))
	active := insertVendor(t, tdb, "LIVE", false, now.AddDate(0, -12, 0))

	svc := newCleanupService(t, tdb)

	t.Run("dry run lists candidates without deleting", func(t *testing.T) {
		manifest, err := svc.Run(ctx, retentionapp.RunOptions{DryRun: true})
		require.NoError(t, err)

		vendors := vendorResult(t, manifest)
		assert.Equal(t, 1, vendors.Candidates)
		assert.Equal(t, []string{expired.String()}, vendors.CandidateIDs)
		assert.Zero(t, vendors.Purged)
		assert.Equal(t, int64(3), tdb.Count("vendors", ""))
		assert.Zero(t, tdb.Count("deletion_logs", ""))
	})

	t.Run("run purges and logs", func(t *testing.T) {
		manifest, err := svc.Run(ctx, retentionapp.RunOptions{Trigger: retention.TriggerScheduled})
		require.NoError(t, err)

		vendors := vendorResult(t, manifest)
		assert.Equal(t, 1, vendors.Purged)
		assert.Equal(t, 1, manifest.Totals.Purged)
		assert.False(t, manifest.PartiallyFailed())

		assert.Zero(t, tdb.Count("vendors", "id = ?", expired))
		assert.Equal(t, int64(1), tdb.Count("vendors", "id = ?", recent))
		assert.Equal(t, int64(1), tdb.Count("vendors", "id = ?", active))

		assert.Equal(t, int64(1), tdb.Count("deletion_logs",
			"table_name = ? AND record_id = ? AND deleted_by = ?", "vendors", expired.String(), audit.DeletedBySystem))

		testutil.RequireEventually(t, func() bool {
			return tdb.Count("activity_logs", "action = ? AND record_id = ?", audit.ActionCleanup, manifest.RunID.String()) == 1
		}, 5*time.Second, 50*time.Millisecond, "cleanup activity not recorded")
	})

	t.Run("second run finds nothing", func(t *testing.T) {
		manifest, err := svc.Run(ctx, retentionapp.RunOptions{})
		require.NoError(t, err)
		assert.Zero(t, manifest.Totals.Candidates)
		assert.Equal(t, int64(1), tdb.Count("deletion_logs", ""))
	})
}

func TestRetention_ReferencedRowFailsWithoutLog(t *testing.T) {
	tdb := newRetentionDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	held := insertVendor(t, tdb, "HELD", true, now.AddDate(0, -8, 0))
	free := insertVendor(t, tdb, "FREE", true, now.AddDate(0, -8, 0))
	insertPurchaseOrder(t, tdb, "PO-HELD", held)

	manifest, err := newCleanupService(t, tdb).Run(ctx, retentionapp.RunOptions{})
	require.NoError(t, err)

	vendors := vendorResult(t, manifest)
	assert.Equal(t, 2, vendors.Candidates)
	assert.Equal(t, 1, vendors.Purged)
	assert.Equal(t, 1, vendors.Failed)
	assert.True(t, manifest.PartiallyFailed())

	assert.Equal(t, int64(1), tdb.Count("vendors", "id = ?", held))
	assert.Zero(t, tdb.Count("vendors", "id = ?", free))
	// The deletion log of the failed purge is rolled back with it
	assert.Zero(t, tdb.Count("deletion_logs", "record_id = ?", held.String()))
	assert.Equal(t, int64(1), tdb.Count("deletion_logs", "record_id = ?", free.String()))
}

func TestRetention_RunLockRejectsOverlap(t *testing.T) {
	tdb := newRetentionDB(t)
	ctx := context.Background()

	lock := cache.NewInMemoryRunLock(time.Minute)
	release, ok, err := lock.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	svc := newCleanupService(t, tdb, retentionapp.WithRunLock(lock))

	_, err = svc.Run(ctx, retentionapp.RunOptions{})
	assert.ErrorIs(t, err, retentionapp.ErrRunInProgress)

	require.NoError(t, release(ctx))
	_, err = svc.Run(ctx, retentionapp.RunOptions{})
	assert.NoError(t, err)
}
