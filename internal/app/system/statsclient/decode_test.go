package statsclient

import (
	"testing"
	"time"

	"github.com/dalemusser/visitorstats/internal/app/system/flatten"
	"github.com/dalemusser/visitorstats/internal/domain/models"
)

func keys(n *models.Node) []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Key
	}
	return out
}

func TestDecode_PreservesKeyOrder(t *testing.T) {
	body := []byte(`{"onlinesStats":{"zeta":1,"alpha":{"y":2,"b":3},"mid":0.5}}`)

	p, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.OnlinesStats == nil {
		t.Fatal("OnlinesStats is nil")
	}

	got := keys(p.OnlinesStats)
	want := []string{"zeta", "alpha", "mid"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	alpha := p.OnlinesStats.Child("alpha")
	if alpha == nil || alpha.Kind != models.KindObject {
		t.Fatalf("alpha = %+v, want object", alpha)
	}
	if k := keys(alpha); k[0] != "y" || k[1] != "b" {
		t.Errorf("alpha keys = %v, want [y b]", k)
	}
	if mid := p.OnlinesStats.Child("mid"); mid.Kind != models.KindNumber || mid.Number != 0.5 {
		t.Errorf("mid = %+v, want number 0.5", mid)
	}
}

func TestDecode_EnvelopeAndFlatAgree(t *testing.T) {
	flat := []byte(`{
		"computedAt": 1588320000000,
		"onlinesStats": {"now": 3},
		"timeSeriesStats": {"thisMonthEveryDay": [{"from": 1588291200000, "to": 1588377600000, "counts": 7}]},
		"statisticalInferences": {"stayingDurationsThisMonth": [60000, 120000]}
	}`)
	envelope := []byte(`{
		"computedAt": 1588320000000,
		"data": {
			"onlinesStats": {"now": 3},
			"timeSeriesStats": {"thisMonthEveryDay": [{"from": 1588291200000, "to": 1588377600000, "counts": 7}]},
			"statisticalInferences": {"stayingDurationsThisMonth": [60000, 120000]}
		}
	}`)

	for name, body := range map[string][]byte{"flat": flat, "envelope": envelope} {
		t.Run(name, func(t *testing.T) {
			p, err := Decode(body)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			wantComputed := time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
			if !p.ComputedAt.Equal(wantComputed) {
				t.Errorf("ComputedAt = %v, want %v", p.ComputedAt.Time, wantComputed)
			}
			if p.OnlinesStats == nil || p.OnlinesStats.LeafCount() != 1 {
				t.Errorf("OnlinesStats = %+v, want one leaf", p.OnlinesStats)
			}
			days := p.TimeSeries.ThisMonthEveryDay
			if len(days) != 1 || days[0].Counts != 7 {
				t.Errorf("ThisMonthEveryDay = %+v", days)
			}
			if got := p.Inferences.StayingDurationsThisMonth; len(got) != 2 || got[1] != 120000 {
				t.Errorf("StayingDurationsThisMonth = %v", got)
			}
		})
	}
}

func TestDecode_ArraysAndInvalidLeaves(t *testing.T) {
	body := []byte(`{"onlinesStats":{"list":[4,5],"label":"n/a","gone":null}}`)

	p, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	list := p.OnlinesStats.Child("list")
	if list.Kind != models.KindObject || len(list.Children) != 2 {
		t.Fatalf("list = %+v, want object with two children", list)
	}
	if list.Children[0].Key != "0" || list.Children[1].Number != 5 {
		t.Errorf("list children = %+v, %+v", list.Children[0], list.Children[1])
	}

	label := p.OnlinesStats.Child("label")
	if label.Kind != models.KindInvalid || label.Raw != `"n/a"` {
		t.Errorf("label = %+v, want invalid leaf with raw text", label)
	}
	if gone := p.OnlinesStats.Child("gone"); gone.Kind != models.KindInvalid {
		t.Errorf("gone = %+v, want invalid leaf", gone)
	}
}

func TestDecode_DuplicateKeysKeepLastValue(t *testing.T) {
	body := []byte(`{"onlinesStats":{"a":1,"b":5,"a":2}}`)

	p, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := keys(p.OnlinesStats)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", got)
	}
	if a := p.OnlinesStats.Child("a"); a == nil || a.Number != 2 {
		t.Errorf("a = %+v, want 2", a)
	}

	res, err := flatten.New().Flatten(p.OnlinesStats)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	want := []models.DisplayEntry{
		{Name: "stat-value-onlineStats-a", Value: "2"},
		{Name: "stat-value-onlineStats-b", Value: "5"},
	}
	if len(res.Entries) != len(want) {
		t.Fatalf("entries = %v, want %v", res.Entries, want)
	}
	for i := range want {
		if res.Entries[i] != want[i] {
			t.Errorf("entries[%d] = %v, want %v", i, res.Entries[i], want[i])
		}
	}
}

func TestDecode_RejectsNonObject(t *testing.T) {
	if _, err := Decode([]byte(`[1,2,3]`)); err != ErrNotObject {
		t.Errorf("Decode(array) error = %v, want ErrNotObject", err)
	}
}

func TestDecode_ISOTimestamps(t *testing.T) {
	body := []byte(`{"computedAt":"2020-05-01T08:00:00Z","onlinesStats":{}}`)

	p, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := p.ComputedAt.ISO(); got != "2020-05-01T08:00:00.000Z" {
		t.Errorf("ComputedAt.ISO() = %q", got)
	}
}
