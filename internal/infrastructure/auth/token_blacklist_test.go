package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/medstock/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_RevokedTokens(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		revoke  string
		ttl     time.Duration
		wait    time.Duration
		check   string
		revoked bool
	}{
		{"revoked jti", "jti-logout", time.Hour, 0, "jti-logout", true},
		{"other jti untouched", "jti-logout", time.Hour, 0, "jti-other", false},
		{"entry expires with token", "jti-short", time.Millisecond, 10 * time.Millisecond, "jti-short", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blacklist := auth.NewInMemoryTokenBlacklist()
			require.NoError(t, blacklist.AddToBlacklist(ctx, tt.revoke, tt.ttl))
			time.Sleep(tt.wait)

			revoked, err := blacklist.IsBlacklisted(ctx, tt.check)
			require.NoError(t, err)
			assert.Equal(t, tt.revoked, revoked)
		})
	}
}

func TestInMemoryTokenBlacklist_UserCutoff(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	issuedEarlier := time.Now().Add(-time.Hour)

	invalid, err := blacklist.IsUserTokenInvalidated(ctx, "pharmacist", issuedEarlier)
	require.NoError(t, err)
	assert.False(t, invalid, "no cutoff recorded yet")

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "pharmacist", time.Hour))

	invalid, err = blacklist.IsUserTokenInvalidated(ctx, "pharmacist", issuedEarlier)
	require.NoError(t, err)
	assert.True(t, invalid)

	invalid, err = blacklist.IsUserTokenInvalidated(ctx, "pharmacist", time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, invalid, "tokens issued after the cutoff stay valid")

	invalid, err = blacklist.IsUserTokenInvalidated(ctx, "storekeeper", issuedEarlier)
	require.NoError(t, err)
	assert.False(t, invalid)
}

func TestInMemoryTokenBlacklist_Concurrent(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jti := fmt.Sprintf("jti-%d", i)
			assert.NoError(t, blacklist.AddToBlacklist(ctx, jti, time.Hour))
			_, err := blacklist.IsBlacklisted(ctx, jti)
			assert.NoError(t, err)
			assert.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, fmt.Sprintf("user-%d", i%3), time.Hour))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		revoked, err := blacklist.IsBlacklisted(ctx, fmt.Sprintf("jti-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}
