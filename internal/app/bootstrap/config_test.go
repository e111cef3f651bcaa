package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/visitorstats/internal/app/system/flatten"
)

func validConfig() AppConfig {
	return AppConfig{
		UpstreamBaseURL: "https://services.example.com",
		FreshnessWindow: 30 * time.Second,
		FetchTimeout:    10 * time.Second,
		RequestTimeout:  30 * time.Second,
		EntryPrefix:     flatten.DefaultPrefix,
		RootLabel:       flatten.DefaultRootLabel,
		TraversalOrder:  flatten.OrderPreOrderName,
		NegativeValues:  flatten.NegativeLegacyName,
		InvalidLeaves:   flatten.InvalidSkipName,
		ChartWidth:      800,
		ChartHeight:     400,
		HistogramTicks:  40,
		CDFCutoff:       0.9,
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"bad url", func(c *AppConfig) { c.UpstreamBaseURL = "not a url" }, "upstream_base_url"},
		{"zero window", func(c *AppConfig) { c.FreshnessWindow = 0 }, "freshness_window"},
		{"negative fetch timeout", func(c *AppConfig) { c.FetchTimeout = -time.Second }, "fetch_timeout"},
		{"unknown order", func(c *AppConfig) { c.TraversalOrder = "bfs" }, "traversal order"},
		{"unknown negative mode", func(c *AppConfig) { c.NegativeValues = "abs" }, "negative value mode"},
		{"unknown invalid mode", func(c *AppConfig) { c.InvalidLeaves = "zero" }, "invalid leaf mode"},
		{"zero width", func(c *AppConfig) { c.ChartWidth = 0 }, "chart size"},
		{"zero ticks", func(c *AppConfig) { c.HistogramTicks = 0 }, "histogram_ticks"},
		{"cutoff above one", func(c *AppConfig) { c.CDFCutoff = 1.5 }, "cdf_cutoff"},
		{"cutoff of one", func(c *AppConfig) { c.CDFCutoff = 1 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(cfg)

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateAppConfig() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateAppConfig() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestFlattener(t *testing.T) {
	cfg := validConfig()
	cfg.RootLabel = ""
	cfg.TraversalOrder = flatten.OrderReverseStackName
	cfg.NegativeValues = flatten.NegativeSignedName
	cfg.InvalidLeaves = flatten.InvalidRejectName

	fl, err := flattener(cfg)
	if err != nil {
		t.Fatalf("flattener() error = %v", err)
	}
	if fl.Prefix != flatten.DefaultPrefix || fl.RootLabel != "" {
		t.Errorf("prefix/root = %q/%q", fl.Prefix, fl.RootLabel)
	}
	if fl.Order != flatten.OrderReverseStack {
		t.Errorf("Order = %v", fl.Order)
	}
	if fl.Policy.Negative != flatten.NegativeSigned || fl.Policy.Invalid != flatten.InvalidReject {
		t.Errorf("Policy = %+v", fl.Policy)
	}
}

func TestLoadLayout_Default(t *testing.T) {
	lay, err := loadLayout("")
	if err != nil {
		t.Fatalf("loadLayout(\"\") error = %v", err)
	}
	if lay.Title == "" || len(lay.Panels) == 0 {
		t.Errorf("default layout = %+v", lay)
	}
}

func TestLoadLayout_MissingFile(t *testing.T) {
	if _, err := loadLayout("/nonexistent/layout.yaml"); err == nil {
		t.Error("loadLayout() should fail for a missing file")
	}
}
