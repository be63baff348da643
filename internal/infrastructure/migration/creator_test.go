package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add stock rules", "add_stock_rules"},
		{"Add-Stock-Rules", "add_stock_rules"},
		{"add__mrn__index", "add_mrn_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "postgres"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres", "000001_init.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres", "000001_init.down.sql"), nil, 0o644))

	files, err := CreateMigration(root, "Add MRN index", "speeds up status filter")
	require.NoError(t, err)
	require.Len(t, files, len(Dialects))

	for _, mf := range files {
		assert.Equal(t, "000002", mf.Version)
		assert.Equal(t, filepath.Join(root, mf.Dialect, "000002_add_mrn_index.up.sql"), mf.UpPath)

		content, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "speeds up status filter")
		assert.FileExists(t, mf.DownPath)
	}

	mysql, err := ListMigrations(filepath.Join(root, "mysql"))
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_add_mrn_index"}, mysql)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_b.up.sql", "000002_b.down.sql",
		"000001_a.up.sql", "000001_a.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.up.sql"), 0o755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, migrations)

	missing, err := ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSourceDir(t *testing.T) {
	dir, err := SourceDir("migrations", "mysql")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("migrations", "mysql"), dir)

	_, err = SourceDir("migrations", "sqlite")
	assert.Error(t, err)
}

func TestRepositoryMigrationsAreInStep(t *testing.T) {
	root := filepath.Join("..", "..", "..", "migrations")
	pg, err := ListMigrations(filepath.Join(root, "postgres"))
	require.NoError(t, err)
	my, err := ListMigrations(filepath.Join(root, "mysql"))
	require.NoError(t, err)

	assert.NotEmpty(t, pg)
	assert.Equal(t, pg, my)
}
