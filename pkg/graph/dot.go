package graph

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/testgraph/pkg/similarity"
)

// metricColors follows the category palette used by the report charts, so a
// metric keeps its color across views.
var metricColors = map[similarity.Metric]string{
	similarity.MetricLCS:     "#1f77b4",
	similarity.MetricCosine:  "#ff7f0e",
	similarity.MetricJaccard: "#2ca02c",
}

// SimilarityDOT converts a similarity graph to Graphviz DOT source.
//
// The graph is undirected and hints the force-directed fdp engine. Every
// edge is emitted, including parallel edges and self-loops; an edge is
// colored by its report and its pen width grows with the weight (clamped
// to [0,1]).
func SimilarityDOT(g *similarity.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=fdp;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %s;\n", quote(n.ID))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := []string{
			fmt.Sprintf("label=\"%.2f\"", e.Weight),
			fmt.Sprintf("penwidth=%.2f", 1+4*clamp01(e.Weight)),
		}
		if c, ok := metricColors[e.Report]; ok {
			attrs = append(attrs, fmt.Sprintf("color=%q", c))
		}
		if e.Metric != "" {
			attrs = append(attrs, "tooltip="+quote(e.Metric))
		}
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", quote(e.Source), quote(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// TreeDOT converts a journey tree to Graphviz DOT source laid out left to
// right. Names repeat freely in journeys, so nodes get positional IDs and
// carry their name as the label.
func TreeDOT(t Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	next := 0
	var walk func(n Tree) string
	walk = func(n Tree) string {
		id := fmt.Sprintf("n%d", next)
		next++
		fmt.Fprintf(&buf, "  %s [label=%s];\n", id, quote(n.Name))
		for _, c := range n.Children {
			cid := walk(c)
			fmt.Fprintf(&buf, "  %s -> %s;\n", id, cid)
		}
		return id
	}
	walk(t)

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

// quote renders s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
