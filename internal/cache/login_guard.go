package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RedisLoginGuard tracks failed sign-in attempts in Redis so the lockout is
// shared by every API instance.
type RedisLoginGuard struct {
	redis       *RedisClient
	maxAttempts int
	lockout     time.Duration
}

// NewRedisLoginGuard blocks a key for lockout after maxAttempts consecutive failures.
func NewRedisLoginGuard(redis *RedisClient, maxAttempts int, lockout time.Duration) *RedisLoginGuard {
	return &RedisLoginGuard{redis: redis, maxAttempts: maxAttempts, lockout: lockout}
}

func failKey(key string) string  { return "login:fail:" + key }
func blockKey(key string) string { return "login:block:" + key }

func (g *RedisLoginGuard) Name() string { return "redis" }

// Blocked returns the remaining block time, or 0 when key may attempt a login.
func (g *RedisLoginGuard) Blocked(ctx context.Context, key string) (time.Duration, error) {
	d, err := g.redis.TTL(ctx, blockKey(key))
	if err != nil {
		return 0, fmt.Errorf("read lockout: %w", err)
	}
	return d, nil
}

// RecordFailure counts a failed attempt. It returns the block duration when
// this failure reached the limit, otherwise 0.
func (g *RedisLoginGuard) RecordFailure(ctx context.Context, key string) (time.Duration, error) {
	n, err := g.redis.Incr(ctx, failKey(key), g.lockout)
	if err != nil {
		return 0, fmt.Errorf("count failure: %w", err)
	}
	if int(n) < g.maxAttempts {
		return 0, nil
	}
	if err := g.redis.Set(ctx, blockKey(key), "1", g.lockout); err != nil {
		return 0, fmt.Errorf("set lockout: %w", err)
	}
	if err := g.redis.Delete(ctx, failKey(key)); err != nil {
		return 0, fmt.Errorf("clear failures: %w", err)
	}
	return g.lockout, nil
}

// Reset clears the failure count after a successful login.
func (g *RedisLoginGuard) Reset(ctx context.Context, key string) error {
	return g.redis.Delete(ctx, failKey(key))
}

type attemptInfo struct {
	count        int
	firstAt      time.Time
	blockedUntil time.Time
}

// MemoryLoginGuard is the in-process lockout used when Redis is not configured.
type MemoryLoginGuard struct {
	mu          sync.Mutex
	attempts    map[string]*attemptInfo
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

func NewMemoryLoginGuard(maxAttempts int, lockout time.Duration) *MemoryLoginGuard {
	return &MemoryLoginGuard{
		attempts:    make(map[string]*attemptInfo),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

func (g *MemoryLoginGuard) Name() string { return "memory" }

func (g *MemoryLoginGuard) Blocked(ctx context.Context, key string) (time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	info, ok := g.attempts[key]
	if !ok {
		return 0, nil
	}
	now := g.now()
	if remaining := info.blockedUntil.Sub(now); remaining > 0 {
		return remaining, nil
	}
	if !info.blockedUntil.IsZero() || now.Sub(info.firstAt) > g.lockout {
		delete(g.attempts, key)
	}
	return 0, nil
}

func (g *MemoryLoginGuard) RecordFailure(ctx context.Context, key string) (time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.cleanup(now)

	info, ok := g.attempts[key]
	if !ok || now.Sub(info.firstAt) > g.lockout {
		info = &attemptInfo{firstAt: now}
		g.attempts[key] = info
	}
	info.count++
	if info.count < g.maxAttempts {
		return 0, nil
	}
	info.blockedUntil = now.Add(g.lockout)
	return g.lockout, nil
}

func (g *MemoryLoginGuard) Reset(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.attempts, key)
	return nil
}

// cleanup drops stale entries so the map stays bounded by active clients.
// Callers hold g.mu.
func (g *MemoryLoginGuard) cleanup(now time.Time) {
	for k, info := range g.attempts {
		if now.After(info.blockedUntil) && now.Sub(info.firstAt) > g.lockout {
			delete(g.attempts, k)
		}
	}
}
