// Package timeouts provides centralized timeout values for upstream calls and handlers.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing    = 2 * time.Second
	DefaultFetch   = 10 * time.Second
	DefaultRequest = 30 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

// Configurable timeout values.
var (
	ping    = DefaultPing
	fetch   = DefaultFetch
	request = DefaultRequest
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Fetch returns the timeout for one upstream statistics fetch.
func Fetch() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return fetch
}

// Request returns the overall budget for one HTTP request.
// It must exceed Fetch so a handler can wait for a full fetch.
func Request() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return request
}

// Config holds timeout configuration values.
type Config struct {
	Ping    time.Duration
	Fetch   time.Duration
	Request time.Duration
}

// Configure sets custom timeout values. Zero fields keep their current value.
// Request is raised to at least Fetch plus one second.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Fetch > 0 {
		fetch = cfg.Fetch
	}
	if cfg.Request > 0 {
		request = cfg.Request
	}
	if request <= fetch {
		request = fetch + time.Second
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	fetch = DefaultFetch
	request = DefaultRequest
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Fetch: fetch, Request: request}
}

// WithTimeout creates a context with timeout that logs when the deadline is hit.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
