package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Fetch: 3 * time.Second})
	got := Current()
	if got.Fetch != 3*time.Second {
		t.Errorf("Fetch = %v, want 3s", got.Fetch)
	}
	if got.Ping != DefaultPing || got.Request != DefaultRequest {
		t.Errorf("untouched values changed: %+v", got)
	}
}

func TestConfigure_RequestExceedsFetch(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Fetch: 40 * time.Second, Request: 20 * time.Second})
	if Request() <= Fetch() {
		t.Errorf("Request() = %v, want more than Fetch() = %v", Request(), Fetch())
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	<-ctx.Done()
	cancel()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
