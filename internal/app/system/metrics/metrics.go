// Package metrics exposes Prometheus collectors for the snapshot cache and
// HTTP request statistics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors holds every metric the service exports.
type Collectors struct {
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	FetchFailures   prometheus.Counter
	FetchDuration   prometheus.Histogram
	SnapshotFetched prometheus.Gauge
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func New(reg *prometheus.Registry) (*Collectors, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Collectors{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "visitorstats_cache_hits_total",
			Help: "Snapshot requests served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "visitorstats_cache_misses_total",
			Help: "Snapshot requests that found no fresh snapshot.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "visitorstats_fetch_failures_total",
			Help: "Upstream fetches that returned an error.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "visitorstats_fetch_duration_seconds",
			Help:    "Latency of upstream GET /onlinesInfo calls.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		SnapshotFetched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "visitorstats_snapshot_fetched_timestamp_seconds",
			Help: "Unix time the current snapshot was fetched.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visitorstats_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visitorstats_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		gatherer: reg,
	}

	for _, col := range []prometheus.Collector{
		c.CacheHits, c.CacheMisses, c.FetchFailures, c.FetchDuration,
		c.SnapshotFetched, c.Requests, c.RequestDuration,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CacheHit records a snapshot served from the cache.
func (c *Collectors) CacheHit() {
	if c == nil {
		return
	}
	c.CacheHits.Inc()
}

// CacheMiss records a snapshot request that needed a fetch.
func (c *Collectors) CacheMiss() {
	if c == nil {
		return
	}
	c.CacheMisses.Inc()
}

// FetchDone records the outcome of one upstream fetch.
func (c *Collectors) FetchDone(elapsed time.Duration, fetchedAt time.Time, err error) {
	if c == nil {
		return
	}
	c.FetchDuration.Observe(elapsed.Seconds())
	if err != nil {
		c.FetchFailures.Inc()
		return
	}
	c.SnapshotFetched.Set(float64(fetchedAt.UnixNano()) / 1e9)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per chi route pattern.
// A nil receiver returns next unchanged.
func (c *Collectors) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}

		c.Requests.WithLabelValues(route, strconv.Itoa(wrapped.statusCode)).Inc()
		c.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher.
func (rw *responseWrapper) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
