// Package journey merges duplicate-named siblings in test-journey trees.
//
// A journey is a tree of named steps describing the paths a test run took.
// Independent producers often emit the same step name several times under
// one parent; a hierarchical layout reads far better when those siblings are
// collapsed into one node that carries all of their children.
//
// # Merging
//
// [MergeSiblings] is the primitive. It takes one sibling sequence and returns
// a sequence in which every name appears once, in order of first appearance.
// The children of same-named siblings are concatenated, existing children
// first, and are never dropped, reordered or deduplicated. The merge is
// shallow: grandchildren are left as they are.
//
// Two tree-level modes build on it:
//
//   - [ModeShallow] ([MergeShallow]) merges only the root's children.
//   - [ModeDeep] ([MergeDeep]) merges every level, top-down, so that no two
//     siblings anywhere in the result share a name.
//
// # Input Format
//
// [Decode] and [ReadTree] accept the journey service payload:
//
//	{"children": [{"name": "Login", "children": [{"name": "Given ..."}]}]}
//
// A missing "children" key is an empty child list. The returned tree hangs
// the payload's children under a synthetic root labelled [RootLabel].
//
// # Concurrency
//
// All functions are pure; the input tree is never modified.
package journey
