package journey

import (
	"strings"

	"github.com/matzehuels/testgraph/pkg/errors"
)

// Synthetic root labels.
const (
	RootLabel       = "Test Journeys"
	MergedRootLabel = "Merged Test Journeys"
)

// Node is one step of a journey tree.
// A nil or empty Children slice marks a leaf.
type Node struct {
	Name     string `json:"name"`
	Children []Node `json:"children,omitempty"`
}

// NewRoot creates a synthetic root holding children.
func NewRoot(label string, children []Node) Node {
	return Node{Name: label, Children: children}
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int { return len(n.Children) }

// Count returns the number of nodes in the subtree rooted at n, n included.
func (n Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Depth returns the number of levels in the subtree rooted at n.
// A leaf has depth 1.
func (n Node) Depth() int {
	d := 0
	for _, c := range n.Children {
		d = max(d, c.Depth())
	}
	return d + 1
}

// TotalChildren sums the direct child counts of nodes.
func TotalChildren(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total += len(n.Children)
	}
	return total
}

// Mode selects how far [Merge] descends into the tree.
type Mode string

// Merge modes.
const (
	ModeShallow Mode = "shallow"
	ModeDeep    Mode = "deep"
)

// ParseMode converts a user-supplied mode name (case-insensitive).
// The empty string selects [ModeShallow].
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeShallow:
		return ModeShallow, nil
	case ModeDeep:
		return ModeDeep, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown merge mode %q (want shallow or deep)", s)
}
