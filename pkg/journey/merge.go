package journey

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MergeSiblings collapses siblings that share a name.
//
// The result holds one node per distinct name, in order of first appearance.
// Each node's children are the concatenation of the children of every input
// sibling with that name, in input order. The empty string is a name like
// any other. Children are copied, not merged: duplicate names among them
// survive until MergeSiblings is applied to that level as well.
//
// The total number of children is conserved, and applying MergeSiblings to
// its own output returns an equal sequence.
func MergeSiblings(children []Node) []Node {
	if len(children) == 0 {
		return children
	}

	acc := orderedmap.New[string, *Node]()
	for _, n := range children {
		if existing, ok := acc.Get(n.Name); ok {
			existing.Children = append(existing.Children, n.Children...)
			continue
		}
		acc.Set(n.Name, &Node{Name: n.Name, Children: slices.Clone(n.Children)})
	}

	out := make([]Node, 0, acc.Len())
	for pair := acc.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, *pair.Value)
	}
	return out
}

// MergeShallow merges the root's children only.
func MergeShallow(root Node) Node {
	return Node{Name: root.Name, Children: MergeSiblings(root.Children)}
}

// MergeDeep merges every level of the tree, top-down. Children gathered from
// several siblings are merged with each other before their own children are
// visited, so no two siblings anywhere in the result share a name.
func MergeDeep(root Node) Node {
	return Node{Name: root.Name, Children: mergeLevel(root.Children)}
}

func mergeLevel(children []Node) []Node {
	merged := MergeSiblings(children)
	if len(merged) == 0 {
		return merged
	}
	// MergeSiblings returned a fresh slice, so updating it in place is safe.
	for i := range merged {
		merged[i].Children = mergeLevel(merged[i].Children)
	}
	return merged
}

// Merge applies the given mode to root.
func Merge(root Node, mode Mode) Node {
	if mode == ModeDeep {
		return MergeDeep(root)
	}
	return MergeShallow(root)
}
