package cache

import (
	"context"
	"sync"
	"time"

	"github.com/medstock/backend/internal/domain/retention"
	"github.com/redis/go-redis/v9"
)

// InMemoryRunLock is a process-local RunLock with the same expiry semantics
// as RedisRunLock. It does not coordinate separate processes.
type InMemoryRunLock struct {
	mu        sync.Mutex
	ttl       time.Duration
	held      bool
	expiresAt time.Time
	gen       uint64
	now       func() time.Time
}

// NewInMemoryRunLock creates a lock that expires after ttl; zero means never
func NewInMemoryRunLock(ttl time.Duration) *InMemoryRunLock {
	return &InMemoryRunLock{ttl: ttl, now: time.Now}
}

// TryAcquire takes the lock unless a live holder owns it
func (l *InMemoryRunLock) TryAcquire(_ context.Context) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.held && (l.ttl <= 0 || now.Before(l.expiresAt)) {
		return nil, false, nil
	}
	l.held = true
	l.expiresAt = now.Add(l.ttl)
	l.gen++
	gen := l.gen

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.gen == gen {
			l.held = false
		}
		return nil
	}
	return release, true, nil
}

// NewRunLock returns a Redis-backed lock when client is set and an in-memory
// one otherwise
func NewRunLock(client *redis.Client, key string, ttl time.Duration) retention.RunLock {
	if client == nil {
		return NewInMemoryRunLock(ttl)
	}
	return NewRedisRunLock(client, key, ttl)
}

var _ retention.RunLock = (*InMemoryRunLock)(nil)
