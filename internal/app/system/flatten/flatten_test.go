package flatten

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"testing"

	"github.com/dalemusser/visitorstats/internal/domain/models"
)

// sample is {a: {b: 1, c: {d: 2}}}.
func sample() *models.Node {
	return models.NewObject("",
		models.NewObject("a",
			models.NewNumber("b", 1),
			models.NewObject("c", models.NewNumber("d", 2)),
		),
	)
}

func names(entries []models.DisplayEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlatten_Sample(t *testing.T) {
	f := Flattener{Prefix: DefaultPrefix}

	res, err := f.Flatten(sample())
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}

	want := []models.DisplayEntry{
		{Name: "stat-value-a-b", Value: "1"},
		{Name: "stat-value-a-c-d", Value: "2"},
	}
	if len(res.Entries) != len(want) {
		t.Fatalf("entries = %+v, want %+v", res.Entries, want)
	}
	for i := range want {
		if res.Entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, res.Entries[i], want[i])
		}
	}
}

func TestFlatten_Orders(t *testing.T) {
	root := models.NewObject("",
		models.NewNumber("x", 1),
		models.NewObject("y", models.NewNumber("p", 2), models.NewNumber("q", 3)),
		models.NewNumber("z", 4),
	)

	tests := []struct {
		order Order
		want  []string
	}{
		{OrderPreOrder, []string{"root-x", "root-y-p", "root-y-q", "root-z"}},
		{OrderReverseStack, []string{"root-z", "root-y-q", "root-y-p", "root-x"}},
	}
	for _, tt := range tests {
		f := Flattener{RootLabel: "root", Order: tt.order}
		res, err := f.Flatten(root)
		if err != nil {
			t.Fatalf("Flatten() error = %v", err)
		}
		if got := names(res.Entries); !equal(got, tt.want) {
			t.Errorf("order %d: names = %v, want %v", tt.order, got, tt.want)
		}
	}
}

func TestFlatten_OneEntryPerLeaf(t *testing.T) {
	// Build a tree with varied depth and collect the expected paths as we go.
	var want []string
	var build func(prefix string, depth int) *models.Node
	build = func(prefix string, depth int) *models.Node {
		n := models.NewObject("")
		for i := 0; i < 3; i++ {
			key := "k" + strconv.Itoa(i)
			path := prefix + "-" + key
			if depth == 0 || i == 0 {
				n.Children = append(n.Children, models.NewNumber(key, float64(i)))
				want = append(want, "stat-value-"+path)
				continue
			}
			child := build(path, depth-1)
			child.Key = key
			n.Children = append(n.Children, child)
		}
		return n
	}
	root := build("onlineStats", 3)

	for _, order := range []Order{OrderPreOrder, OrderReverseStack} {
		f := New()
		f.Order = order
		res, err := f.Flatten(root)
		if err != nil {
			t.Fatalf("Flatten() error = %v", err)
		}

		got := names(res.Entries)
		if len(got) != root.LeafCount() {
			t.Errorf("order %d: %d entries, want %d", order, len(got), root.LeafCount())
		}
		sort.Strings(got)
		sorted := append([]string(nil), want...)
		sort.Strings(sorted)
		if !equal(got, sorted) {
			t.Errorf("order %d: names = %v, want %v", order, got, sorted)
		}
	}
}

func TestFlatten_DeepNesting(t *testing.T) {
	const depth = 500
	leaf := models.NewNumber("leaf", 0.5)
	node := leaf
	for i := 0; i < depth; i++ {
		node = models.NewObject("n", node)
	}
	root := models.NewObject("", node)

	for _, order := range []Order{OrderPreOrder, OrderReverseStack} {
		f := Flattener{Order: order}
		res, err := f.Flatten(root)
		if err != nil {
			t.Fatalf("Flatten() error = %v", err)
		}
		if len(res.Entries) != 1 || res.Entries[0].Value != "0.50" {
			t.Errorf("order %d: entries = %+v", order, res.Entries)
		}
	}
}

func TestFlatten_RootLeaf(t *testing.T) {
	res, err := New().Flatten(models.NewNumber("onlinesStats", 7))
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Name != "stat-value-onlineStats" {
		t.Errorf("entries = %+v", res.Entries)
	}
}

func TestFlatten_InvalidLeaves(t *testing.T) {
	root := models.NewObject("",
		models.NewNumber("ok", 1),
		&models.Node{Key: "text", Kind: models.KindInvalid, Raw: `"x"`},
		models.NewNumber("nan", math.NaN()),
	)

	res, err := Flattener{Prefix: "p-"}.Flatten(root)
	if err != nil {
		t.Fatalf("Flatten() under InvalidSkip error = %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Name != "p-ok" {
		t.Errorf("entries = %+v, want only p-ok", res.Entries)
	}
	if !equal(res.Skipped, []string{"text", "nan"}) {
		t.Errorf("skipped = %v, want [text nan]", res.Skipped)
	}

	f := Flattener{Policy: Policy{Invalid: InvalidReject}}
	if _, err := f.Flatten(root); !errors.Is(err, ErrInvalidLeaf) {
		t.Errorf("Flatten() under InvalidReject error = %v, want ErrInvalidLeaf", err)
	}
}

func TestFlatten_NilTree(t *testing.T) {
	if _, err := New().Flatten(nil); !errors.Is(err, ErrNoTree) {
		t.Errorf("Flatten(nil) error = %v, want ErrNoTree", err)
	}
}

func TestFlatten_NamesAreUnique(t *testing.T) {
	// {"a-b": 1, "a": {"b": 2}, "c": 3, "c": 4}
	root := models.NewObject("",
		models.NewNumber("a-b", 1),
		models.NewObject("a", models.NewNumber("b", 2)),
		models.NewNumber("c", 3),
		models.NewNumber("c", 4),
	)

	for _, order := range []Order{OrderPreOrder, OrderReverseStack} {
		f := New()
		f.Order = order
		res, err := f.Flatten(root)
		if err != nil {
			t.Fatalf("Flatten() error = %v", err)
		}
		seen := make(map[string]bool)
		for _, e := range res.Entries {
			if seen[e.Name] {
				t.Errorf("order %d: duplicate name %q in %v", order, e.Name, res.Entries)
			}
			seen[e.Name] = true
		}
		if len(res.Entries) != 2 {
			t.Errorf("order %d: %d entries, want 2", order, len(res.Entries))
		}
	}

	res, err := New().Flatten(root)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	want := []models.DisplayEntry{
		{Name: "stat-value-onlineStats-a-b", Value: "2"},
		{Name: "stat-value-onlineStats-c", Value: "4"},
	}
	for i := range want {
		if i >= len(res.Entries) || res.Entries[i] != want[i] {
			t.Errorf("entries = %v, want %v", res.Entries, want)
			break
		}
	}
}
