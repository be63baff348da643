//go:build integration

// Package integration runs the MedStock backend against real PostgreSQL and
// Redis containers started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/medstock/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresImage = "postgres:16-alpine"

// pgInstance is a running container with the schema already migrated
type pgInstance struct {
	container *tcpostgres.PostgresContainer
	dsn       string
}

func (p *pgInstance) terminate(ctx context.Context) error {
	return p.container.Terminate(ctx)
}

var shared struct {
	sync.Mutex
	instance *pgInstance
}

// TestDB is a GORM connection to a migrated PostgreSQL database
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string

	t        *testing.T
	instance *pgInstance
	owned    bool
}

// NewTestDB starts a dedicated container for t. It is terminated when t ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	inst := startPostgres(t, "medstock_test")
	tdb := open(t, inst)
	tdb.owned = true
	t.Cleanup(tdb.Close)
	return tdb
}

// NewSharedTestDB connects to a container shared by the whole package.
// Tests using it call CleanTables before seeding data.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	shared.Lock()
	if shared.instance == nil {
		shared.instance = startPostgres(t, "medstock_shared_test")
	}
	inst := shared.instance
	shared.Unlock()

	tdb := open(t, inst)
	t.Cleanup(tdb.Close)
	return tdb
}

// CleanupSharedContainer terminates the shared container. TestMain calls it
// after the package's tests have run.
func CleanupSharedContainer() {
	shared.Lock()
	defer shared.Unlock()
	if shared.instance == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = shared.instance.terminate(ctx)
	shared.instance = nil
}

func startPostgres(t *testing.T, database string) *pgInstance {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase(database),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("medstock"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	inst := &pgInstance{container: container, dsn: dsn}
	migrate(t, inst)
	return inst
}

// migrate applies the postgres migrations through the migrator used by
// cmd/migrate
func migrate(t *testing.T, inst *pgInstance) {
	t.Helper()

	db, err := gorm.Open(gormpostgres.Open(inst.dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "Failed to connect for migrations")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, config.DriverPostgres, migrationsRoot(t), zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
}

func open(t *testing.T, inst *pgInstance) *TestDB {
	t.Helper()

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(inst.dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	return &TestDB{DB: db, SqlDB: sqlDB, DSN: inst.dsn, t: t, instance: inst}
}

// Close closes the connection, and the container too when it is not shared
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		_ = tdb.SqlDB.Close()
		tdb.SqlDB = nil
	}
	if !tdb.owned || tdb.instance == nil {
		return
	}
	if err := tdb.instance.terminate(context.Background()); err != nil {
		tdb.t.Logf("Warning: failed to terminate container: %v", err)
	}
	tdb.instance = nil
}

// CleanTables empties every application table, keeping the migration version
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT quote_ident(tablename) FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to list tables")
	if len(tables) == 0 {
		return
	}
	require.NoError(tdb.t,
		tdb.DB.Exec("TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE").Error,
		"Failed to truncate tables")
}

// Count returns the number of rows in table matching where
func (tdb *TestDB) Count(table, where string, args ...any) int64 {
	tdb.t.Helper()

	var n int64
	q := tdb.DB.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(tdb.t, q.Count(&n).Error, "Failed to count %s", table)
	return n
}

// migrationsRoot walks up from this file to the module root holding
// migrations/
func migrationsRoot(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "Cannot locate test source")

	for dir := filepath.Dir(file); ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		if parent := filepath.Dir(dir); parent == dir {
			require.FailNow(t, "Could not find migrations directory")
			return ""
		}
	}
}
