package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dalemusser/visitorstats/internal/app/store/snapshot"
	"github.com/dalemusser/visitorstats/internal/app/system/statsclient"
	"go.uber.org/zap"
)

// SampleComputedAt is the computedAt of SamplePayload, in ISO form.
const SampleComputedAt = "2020-05-01T08:00:00.000Z"

// SamplePayload is an /onlinesInfo body using the data envelope.
const SamplePayload = `{
  "computedAt": 1588320000000,
  "data": {
    "onlinesStats": {
      "today": {"visitors": 12, "pageViews": 30.456},
      "ratio": 0.004,
      "idle": 0
    },
    "timeSeriesStats": {
      "thisMonthEveryDay": [
        {"from": 1588291200000, "to": 1588377600000, "counts": 5},
        {"from": 1588377600000, "to": 1588464000000, "counts": 9},
        {"from": 1588464000000, "to": 1588550400000, "counts": 7}
      ]
    },
    "statisticalInferences": {
      "stayingDurationsThisMonth": [60000, 120000, 120000, 180000, 240000, 300000]
    }
  }
}`

// Upstream is a fake statistics service.
type Upstream struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	calls  atomic.Int64
}

// NewUpstream starts a fake service answering /onlinesInfo with SamplePayload.
// The server is closed when the test ends.
func NewUpstream(t testing.TB) *Upstream {
	t.Helper()
	u := &Upstream{status: http.StatusOK, body: SamplePayload}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != statsclient.InfoPath {
		http.NotFound(w, r)
		return
	}
	u.calls.Add(1)

	u.mu.Lock()
	status, body := u.status, u.body
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// Respond changes the status and body of later responses.
func (u *Upstream) Respond(status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status = status
	u.body = body
}

// Calls returns how many /onlinesInfo requests were served.
func (u *Upstream) Calls() int64 {
	return u.calls.Load()
}

// NewCache returns a snapshot cache backed by u with default freshness.
func (u *Upstream) NewCache(t testing.TB) *snapshot.Cache {
	t.Helper()
	client, err := statsclient.New(u.URL, u.Client(), 0, zap.NewNop())
	if err != nil {
		t.Fatalf("statsclient.New: %v", err)
	}
	return snapshot.New(client, snapshot.Config{}, zap.NewNop())
}
