// Package ratelimit throttles requests per client identifier (the client IP
// address in the HTTP layer). Two backends share the Limiter interface: an
// in-process token bucket per identifier, and a Redis INCR + EXPIRE fixed
// window for deployments running several replicas.
package ratelimit

import (
	"context"
	"time"
)

// Rule defines a rate limiting policy: the maximum number of requests allowed
// in the window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// DefaultRule allows 100 requests per minute per client.
var DefaultRule = Rule{Limit: 100, Window: time.Minute}

type Limiter interface {
	// Allow reports whether identifier may make one more request. A non-nil
	// error comes with allowed=true when the backend fails open.
	Allow(ctx context.Context, identifier string) (bool, error)
}

// Remainer is implemented by limiters that can report the budget left.
type Remainer interface {
	Remaining(ctx context.Context, identifier string) (int, error)
}
