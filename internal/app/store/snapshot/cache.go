// Package snapshot holds the process-wide cache of remote statistics.
//
// A single StatsSnapshot is shared by every handler. It is refreshed lazily:
// the first Get after the freshness window has elapsed triggers one upstream
// fetch, and concurrent callers that miss at the same time wait on that same
// fetch instead of issuing their own.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/visitorstats/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is how long a snapshot is served before it is refetched.
const DefaultFreshness = 30 * time.Second

// Fetcher retrieves one payload from the statistics service.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.Payload, error)
}

// Source is what handlers need from the cache.
type Source interface {
	Get(ctx context.Context) (*models.StatsSnapshot, error)
}

// Observer receives cache activity. *metrics.Collectors satisfies it.
type Observer interface {
	CacheHit()
	CacheMiss()
	FetchDone(elapsed time.Duration, fetchedAt time.Time, err error)
}

// Config configures a Cache.
type Config struct {
	// Freshness is the maximum snapshot age that is still served.
	// Zero means DefaultFreshness.
	Freshness time.Duration

	// FetchTimeout bounds each upstream fetch. Zero means no extra bound.
	FetchTimeout time.Duration

	// Observer is optional.
	Observer Observer

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Cache serves the current snapshot and refreshes it when stale.
type Cache struct {
	fetcher  Fetcher
	logger   *zap.Logger
	fresh    time.Duration
	timeout  time.Duration
	observer Observer
	now      func() time.Time

	mu      sync.RWMutex
	current *models.StatsSnapshot

	group singleflight.Group
}

// New creates an empty Cache.
func New(fetcher Fetcher, cfg Config, logger *zap.Logger) *Cache {
	c := &Cache{
		fetcher:  fetcher,
		logger:   logger,
		fresh:    cfg.Freshness,
		timeout:  cfg.FetchTimeout,
		observer: cfg.Observer,
		now:      cfg.Now,
	}
	if c.fresh <= 0 {
		c.fresh = DefaultFreshness
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	return c
}

// Freshness returns the configured freshness window.
func (c *Cache) Freshness() time.Duration {
	return c.fresh
}

// Peek returns the stored snapshot without fetching. It may be stale or nil.
func (c *Cache) Peek() *models.StatsSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Get returns a snapshot no older than the freshness window, fetching a new
// one if needed. On fetch failure the stored snapshot is left untouched and
// the fetch error is returned.
func (c *Cache) Get(ctx context.Context) (*models.StatsSnapshot, error) {
	if s := c.freshSnapshot(); s != nil {
		c.observer.CacheHit()
		return s, nil
	}
	c.observer.CacheMiss()

	ch := c.group.DoChan("snapshot", func() (any, error) {
		// Another flight may have stored a snapshot while this one was queued.
		if s := c.freshSnapshot(); s != nil {
			return s, nil
		}
		return c.refresh(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.StatsSnapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) freshSnapshot() *models.StatsSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	if c.current.Age(c.now()) > c.fresh {
		return nil
	}
	return c.current
}

// refresh performs one upstream fetch and stores the result.
// The fetch is detached from the caller's cancellation because other callers
// may be waiting on the same flight.
func (c *Cache) refresh(ctx context.Context) (*models.StatsSnapshot, error) {
	fctx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(fctx, c.timeout)
		defer cancel()
	}

	// The window starts when the request goes out, not when it returns.
	fetchedAt := c.now()
	start := time.Now()
	payload, err := c.fetcher.Fetch(fctx)
	elapsed := time.Since(start)
	if err != nil {
		c.observer.FetchDone(elapsed, time.Time{}, err)
		c.logger.Warn("statistics fetch failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}

	s := &models.StatsSnapshot{
		ID:        uuid.NewString(),
		FetchedAt: fetchedAt,
		Payload:   payload,
	}

	c.mu.Lock()
	c.current = s
	c.mu.Unlock()

	c.observer.FetchDone(elapsed, s.FetchedAt, nil)
	c.logger.Info("statistics snapshot refreshed",
		zap.String("snapshot_id", s.ID),
		zap.Time("computed_at", payload.ComputedAt.Time),
		zap.Duration("elapsed", elapsed),
	)
	return s, nil
}

type nopObserver struct{}

func (nopObserver) CacheHit()                                 {}
func (nopObserver) CacheMiss()                                {}
func (nopObserver) FetchDone(time.Duration, time.Time, error) {}
