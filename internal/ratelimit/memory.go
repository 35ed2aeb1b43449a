package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per identifier. Buckets idle for longer
// than the rule window are evicted by Cleanup.
type MemoryLimiter struct {
	rule     Rule
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewMemoryLimiter(rule Rule) *MemoryLimiter {
	return &MemoryLimiter{
		rule:     rule,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[identifier]
	if !ok {
		every := rate.Every(l.rule.Window / time.Duration(l.rule.Limit))
		v = &visitor{limiter: rate.NewLimiter(every, l.rule.Limit)}
		l.visitors[identifier] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1), nil
}

// Cleanup drops buckets that have been idle for a full window, which have
// refilled completely and carry no state worth keeping.
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.rule.Window)
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (l *MemoryLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// Remaining returns the whole tokens left in identifier's bucket.
func (l *MemoryLimiter) Remaining(_ context.Context, identifier string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[identifier]
	if !ok {
		return l.rule.Limit, nil
	}

	tokens := int(v.limiter.TokensAt(l.now()))
	if tokens < 0 {
		tokens = 0
	}
	return tokens, nil
}

func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
