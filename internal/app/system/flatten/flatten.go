// Package flatten turns the nested statistics tree into display entries.
package flatten

import (
	"errors"
	"fmt"

	"github.com/dalemusser/visitorstats/internal/domain/models"
)

// Defaults used by the report page.
const (
	DefaultPrefix    = "stat-value-"
	DefaultRootLabel = "onlineStats"
	Separator        = "-"
)

var (
	// ErrNoTree is returned when there is nothing to flatten.
	ErrNoTree = errors.New("flatten: statistics tree is missing")
	// ErrInvalidLeaf is returned under InvalidReject for a non-numeric leaf.
	ErrInvalidLeaf = errors.New("flatten: non-numeric leaf")
)

// Order selects the sequence in which leaves are emitted.
type Order int

const (
	// OrderPreOrder emits leaves depth-first with siblings in document order.
	OrderPreOrder Order = iota
	// OrderReverseStack emits leaves in the order of a last-in-first-out
	// stack walk: depth-first, with each object's siblings reversed.
	OrderReverseStack
)

// InvalidMode selects what happens to non-numeric or non-finite leaves.
type InvalidMode int

const (
	// InvalidSkip drops the leaf and reports it through Result.Skipped.
	InvalidSkip InvalidMode = iota
	// InvalidReject fails the whole flatten with ErrInvalidLeaf.
	InvalidReject
)

// Policy groups the value-level display decisions.
type Policy struct {
	Negative NegativeMode
	Invalid  InvalidMode
}

// Format renders a numeric leaf under the policy.
func (p Policy) Format(v float64) string {
	return formatWith(v, p.Negative)
}

// Flattener converts a tree into DisplayEntry values.
type Flattener struct {
	Prefix    string
	RootLabel string
	Order     Order
	Policy    Policy
}

// New returns a Flattener with the report defaults.
func New() Flattener {
	return Flattener{Prefix: DefaultPrefix, RootLabel: DefaultRootLabel}
}

// Result is the outcome of one Flatten call.
type Result struct {
	Entries []models.DisplayEntry
	// Skipped lists the paths of invalid leaves dropped under InvalidSkip.
	Skipped []string
}

// terminal is a leaf found during traversal, before formatting.
type terminal struct {
	path string
	node *models.Node
}

// Flatten walks root and returns one entry per numeric leaf. Entry names are
// Prefix + RootLabel + "-" + key + "-" + ... and are always unique: when two
// leaves map to the same name the later leaf's value replaces the earlier
// entry in place.
func (f Flattener) Flatten(root *models.Node) (Result, error) {
	if root == nil {
		return Result{}, ErrNoTree
	}

	var leaves []terminal
	switch f.Order {
	case OrderReverseStack:
		leaves = f.stackWalk(root)
	default:
		leaves = f.preOrder(root, f.RootLabel, nil)
	}

	res := Result{Entries: make([]models.DisplayEntry, 0, len(leaves))}
	index := make(map[string]int, len(leaves))
	for _, l := range leaves {
		if l.node.Kind != models.KindNumber || !finite(l.node.Number) {
			if f.Policy.Invalid == InvalidReject {
				return Result{}, fmt.Errorf("%w at %q", ErrInvalidLeaf, l.path)
			}
			res.Skipped = append(res.Skipped, l.path)
			continue
		}
		e := models.DisplayEntry{
			Name:  f.Prefix + l.path,
			Value: f.Policy.Format(l.node.Number),
		}
		if i, ok := index[e.Name]; ok {
			res.Entries[i] = e
			continue
		}
		index[e.Name] = len(res.Entries)
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}

func (f Flattener) preOrder(n *models.Node, path string, out []terminal) []terminal {
	if n.IsLeaf() {
		return append(out, terminal{path: path, node: n})
	}
	for _, c := range n.Children {
		out = f.preOrder(c, join(path, c.Key), out)
	}
	return out
}

func (f Flattener) stackWalk(root *models.Node) []terminal {
	var out []terminal
	stack := []terminal{{path: f.RootLabel, node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node.IsLeaf() {
			out = append(out, top)
			continue
		}
		for _, c := range top.node.Children {
			stack = append(stack, terminal{path: join(top.path, c.Key), node: c})
		}
	}
	return out
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + Separator + key
}
