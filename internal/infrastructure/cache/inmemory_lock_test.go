package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRunLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails while held", func(t *testing.T) {
		lock := NewInMemoryRunLock(time.Minute)

		release, ok, err := lock.TryAcquire(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = lock.TryAcquire(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, release(ctx))
		_, ok, err = lock.TryAcquire(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired lock can be taken over", func(t *testing.T) {
		lock := NewInMemoryRunLock(time.Minute)
		now := time.Now()
		lock.now = func() time.Time { return now }

		staleRelease, ok, _ := lock.TryAcquire(ctx)
		require.True(t, ok)

		now = now.Add(2 * time.Minute)
		_, ok, _ = lock.TryAcquire(ctx)
		require.True(t, ok)

		// the stale holder must not free the new holder's lock
		require.NoError(t, staleRelease(ctx))
		_, ok, _ = lock.TryAcquire(ctx)
		assert.False(t, ok)
	})
}

func TestNewRunLock(t *testing.T) {
	assert.IsType(t, &InMemoryRunLock{}, NewRunLock(nil, "", time.Minute))
}
