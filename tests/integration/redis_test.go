//go:build integration

package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medstock/backend/internal/infrastructure/auth"
	"github.com/medstock/backend/internal/infrastructure/cache"
	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestRedis starts a Redis container and returns a connected client
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := cache.NewRedisClient(ctx, config.RedisConfig{
		Enabled: true,
		Host:    host,
		Port:    port.Int(),
	})
	require.NoError(t, err, "Failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisRunLock(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	t.Run("only one holder at a time", func(t *testing.T) {
		lock := cache.NewRunLock(client, "medstock:test:exclusive", time.Minute)

		var (
			wg       sync.WaitGroup
			acquired atomic.Int32
			releases = make(chan func(context.Context) error, 8)
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, ok, err := lock.TryAcquire(ctx)
				assert.NoError(t, err)
				if ok {
					acquired.Add(1)
					releases <- release
				}
			}()
		}
		wg.Wait()
		close(releases)

		assert.Equal(t, int32(1), acquired.Load())
		for release := range releases {
			require.NoError(t, release(ctx))
		}

		_, ok, err := lock.TryAcquire(ctx)
		require.NoError(t, err)
		assert.True(t, ok, "lock should be free after release")
	})

	t.Run("stale release does not steal a newer lock", func(t *testing.T) {
		key := "medstock:test:stale"
		lock := cache.NewRunLock(client, key, time.Minute)

		release, ok, err := lock.TryAcquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		// Simulate expiry followed by another instance taking the lock
		require.NoError(t, client.Del(ctx, key).Err())
		_, ok, err = lock.TryAcquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, release(ctx))
		exists, err := client.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		lock := cache.NewRunLock(client, "medstock:test:ttl", 200*time.Millisecond)

		_, ok, err := lock.TryAcquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		time.Sleep(400 * time.Millisecond)
		_, ok, err = lock.TryAcquire(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRedisTokenBlacklist(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	blacklist := auth.NewRedisTokenBlacklist(client)

	t.Run("revoked jti", func(t *testing.T) {
		revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))

		revoked, err = blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("user invalidation covers older tokens only", func(t *testing.T) {
		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Minute))

		invalid, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.True(t, invalid)

		invalid, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, invalid)

		invalid, err = blacklist.IsUserTokenInvalidated(ctx, "user-2", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.False(t, invalid)
	})
}
