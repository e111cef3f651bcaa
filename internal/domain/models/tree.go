// internal/domain/models/tree.go
package models

// NodeKind classifies a node of the statistics tree.
type NodeKind int

const (
	// KindObject is a nested object whose children are expanded.
	KindObject NodeKind = iota
	// KindNumber is a numeric leaf.
	KindNumber
	// KindInvalid is a scalar leaf that is not a number (string, bool, null).
	KindInvalid
)

// Node is one element of the nested statistics tree.
//
// Children keep the key order of the source document. Arrays are decoded as
// objects keyed by their decimal index ("0", "1", ...).
type Node struct {
	Key      string
	Kind     NodeKind
	Number   float64 // set when Kind == KindNumber
	Raw      string  // source text of an invalid leaf, for logging
	Children []*Node
}

// NewObject returns an object node with the given children.
func NewObject(key string, children ...*Node) *Node {
	return &Node{Key: key, Kind: KindObject, Children: children}
}

// NewNumber returns a numeric leaf.
func NewNumber(key string, v float64) *Node {
	return &Node{Key: key, Kind: KindNumber, Number: v}
}

// IsLeaf reports whether the node is a terminal (non-object) node.
func (n *Node) IsLeaf() bool {
	return n.Kind != KindObject
}

// Child returns the direct child with the given key, or nil.
func (n *Node) Child(key string) *Node {
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// LeafCount returns the number of terminal nodes beneath n (n itself if it is a leaf).
func (n *Node) LeafCount() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.LeafCount()
	}
	return total
}
