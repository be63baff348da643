package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_UsageErrors(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"seed"}},
		{"create without name", []string{"create"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, run(tt.args, root, zap.NewNop()), errUsage)
		})
	}
}

func TestRun_CreateWritesEveryDialect(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, run([]string{"create", "add_batch_expiry", "track expiry per batch"}, root, zap.NewNop()))
	require.NoError(t, run([]string{"list"}, root, zap.NewNop()))

	for _, dialect := range []string{"postgres", "mysql"} {
		matches, err := filepath.Glob(filepath.Join(root, dialect, "000001_add_batch_expiry.*.sql"))
		require.NoError(t, err)
		assert.Len(t, matches, 2, dialect)
	}
}

func TestIntArg(t *testing.T) {
	n, err := intArg([]string{"-2"}, "step count")
	require.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = intArg(nil, "version")
	assert.ErrorIs(t, err, errUsage)

	_, err = intArg([]string{"two"}, "version")
	assert.ErrorIs(t, err, errUsage)
}
