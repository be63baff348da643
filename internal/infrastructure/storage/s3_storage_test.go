package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewS3Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3Archive(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3Archive(ctx, &config.StorageConfig{AccessKeyID: "k", SecretKey: "s"})
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("half of the key pair", func(t *testing.T) {
		_, err := NewS3Archive(ctx, &config.StorageConfig{Bucket: "reports", AccessKeyID: "k"})
		assert.ErrorContains(t, err, "together")
	})

	t.Run("static credentials with custom endpoint", func(t *testing.T) {
		archive, err := NewS3Archive(ctx, &config.StorageConfig{
			Bucket:         "reports",
			Region:         "ap-south-1",
			Endpoint:       "localhost:9000",
			AccessKeyID:    "minio",
			SecretKey:      "minio123",
			ForcePathStyle: true,
		}, WithLogger(zap.NewNop()))
		require.NoError(t, err)
		assert.Equal(t, "reports", archive.Bucket())
	})
}

// fakeBucketServer answers HeadBucket and CreateBucket for a path-style
// client and records the calls it receives
func fakeBucketServer(t *testing.T, exists bool) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, r.Method+" "+r.URL.Path)

		switch {
		case r.Method == http.MethodHead && !exists:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut:
			exists = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), calls...)
	}
}

func newTestArchive(t *testing.T, endpoint string) *S3Archive {
	t.Helper()
	archive, err := NewS3Archive(context.Background(), &config.StorageConfig{
		Bucket:         "reports",
		Endpoint:       endpoint,
		AccessKeyID:    "minio",
		SecretKey:      "minio123",
		ForcePathStyle: true,
	})
	require.NoError(t, err)
	return archive
}

func TestS3Archive_EnsureBucket(t *testing.T) {
	t.Run("creates a missing bucket", func(t *testing.T) {
		srv, calls := fakeBucketServer(t, false)

		require.NoError(t, newTestArchive(t, srv.URL).EnsureBucket(context.Background()))
		assert.Equal(t, []string{"HEAD /reports", "PUT /reports"}, calls())
	})

	t.Run("existing bucket is left alone", func(t *testing.T) {
		srv, calls := fakeBucketServer(t, true)

		require.NoError(t, newTestArchive(t, srv.URL).EnsureBucket(context.Background()))
		assert.Equal(t, []string{"HEAD /reports"}, calls())
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "", normalizeEndpoint(""))
	assert.Equal(t, "https://s3.example.com", normalizeEndpoint("s3.example.com"))
	assert.Equal(t, "http://localhost:9000", normalizeEndpoint("http://localhost:9000"))
}

func TestMemoryArchive(t *testing.T) {
	ctx := context.Background()
	archive := NewMemoryArchive()

	require.Error(t, archive.Put(ctx, "", []byte("x"), "text/plain"))

	data := []byte("report")
	require.NoError(t, archive.Put(ctx, "reports/stock/1.xlsx", data, "application/octet-stream"))
	data[0] = 'R'

	ok, err := archive.Exists(ctx, "reports/stock/1.xlsx")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "report", string(archive.objects["reports/stock/1.xlsx"]))

	ok, err = archive.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"reports/stock/1.xlsx"}, archive.Keys())
}
