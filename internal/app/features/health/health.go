// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/visitorstats/internal/app/system/jsonutil"
	"github.com/dalemusser/visitorstats/internal/app/system/timeouts"
	"github.com/dalemusser/visitorstats/internal/domain/models"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SnapshotCache is the part of the snapshot cache health checks use.
type SnapshotCache interface {
	Get(ctx context.Context) (*models.StatsSnapshot, error)
	Peek() *models.StatsSnapshot
	Freshness() time.Duration
}

// Handler provides health check endpoints.
type Handler struct {
	cache  SnapshotCache
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new health check Handler.
func NewHandler(cache SnapshotCache, logger *zap.Logger) *Handler {
	return &Handler{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
	Snapshot *SnapshotStatus   `json:"snapshot,omitempty"`
}

// SnapshotStatus describes the cached statistics snapshot.
type SnapshotStatus struct {
	ID         string    `json:"id"`
	FetchedAt  time.Time `json:"fetchedAt"`
	Age        string    `json:"age"`
	AgeSeconds float64   `json:"ageSeconds"`
	Fresh      bool      `json:"fresh"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready and /livez endpoints directly on the root router.
// This is the standard convention for Kubernetes probes:
//   - /ready (or /readyz) - readiness probe
//   - /livez - liveness probe
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check reports the state of the cached snapshot without contacting the
// statistics service. A missing or stale snapshot is "degraded", not an
// error: the next report request refreshes it.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: make(map[string]string),
	}

	snap := h.cache.Peek()
	switch {
	case snap == nil:
		resp.Status = "degraded"
		resp.Services["statistics"] = "not fetched yet"
	default:
		resp.Snapshot = h.status(snap)
		if resp.Snapshot.Fresh {
			resp.Services["statistics"] = "ok"
		} else {
			resp.Status = "degraded"
			resp.Services["statistics"] = "stale"
		}
	}

	jsonutil.OK(w, resp)
}

// Ready checks if the service can serve a report, fetching a snapshot when
// none is fresh. The probe gives up after the ping timeout; the fetch itself
// carries on and serves the next probe. Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.logger, "readiness snapshot")
	defer cancel()

	if _, err := h.cache.Get(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}

	jsonutil.OK(w, map[string]string{"status": "ready"})
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]string{"status": "alive"})
}

func (h *Handler) status(snap *models.StatsSnapshot) *SnapshotStatus {
	now := h.now()
	age := snap.Age(now)
	return &SnapshotStatus{
		ID:         snap.ID,
		FetchedAt:  snap.FetchedAt,
		Age:        humanize.RelTime(snap.FetchedAt, now, "ago", "from now"),
		AgeSeconds: age.Seconds(),
		Fresh:      age <= h.cache.Freshness(),
	}
}
