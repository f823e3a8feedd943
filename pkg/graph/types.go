package graph

import (
	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/journey"
	"github.com/matzehuels/testgraph/pkg/similarity"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types handed to the rendering collaborator.
const (
	VizTypeForce = "force" // force-directed similarity graph
	VizTypeTree  = "tree"  // hierarchical journey tree
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidateFormat returns an INVALID_FORMAT error for unsupported formats.
// Format names are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want json or dot)", format)
	}
	return nil
}

// =============================================================================
// ForceGraph - Force-Directed Layout Input
// =============================================================================

// ForceGraph is the node-link document consumed by force-directed layouts.
//
//	{
//	  "nodes": [{"id": "T1"}, {"id": "T2"}],
//	  "links": [{"source": "T1", "target": "T2", "weight": 0.5, "metric": "LCS"}]
//	}
type ForceGraph struct {
	Nodes []ForceNode `json:"nodes"`
	Links []Link      `json:"links"`
}

// ForceNode is a test in a [ForceGraph].
type ForceNode struct {
	ID string `json:"id"`
}

// Link is a weighted similarity edge in a [ForceGraph].
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	Metric string  `json:"metric,omitempty"`
}

// FromSimilarity converts a built similarity graph to its wire format.
// Node and edge order are preserved; layouts rely on it for stable seeding.
func FromSimilarity(g *similarity.Graph) ForceGraph {
	out := ForceGraph{
		Nodes: make([]ForceNode, len(g.Nodes)),
		Links: make([]Link, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = ForceNode{ID: n.ID}
	}
	for i, e := range g.Edges {
		out.Links[i] = Link{Source: e.Source, Target: e.Target, Weight: e.Weight, Metric: e.Metric}
	}
	return out
}

// =============================================================================
// Tree - Hierarchical Layout Input
// =============================================================================

// Tree is the rooted document consumed by hierarchical layouts. It has the
// same shape as a journey node: {"name": ..., "children": [...]}, with
// "children" omitted on leaves.
type Tree = journey.Node
