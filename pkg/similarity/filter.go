package similarity

import (
	"math"
	"slices"
)

// MetricStats summarizes the edges contributed by one report.
type MetricStats struct {
	Report Metric  `json:"report"`
	Edges  int     `json:"edges"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// Stats summarizes a graph.
type Stats struct {
	Nodes     int           `json:"nodes"`
	Edges     int           `json:"edges"`
	SelfLoops int           `json:"self_loops"`
	ByMetric  []MetricStats `json:"by_metric"`
}

// Stats computes per-metric edge counts and weight ranges.
// ByMetric always has one entry per metric in [MetricOrder]; metrics
// without edges report zero for every field.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}

	idx := make(map[Metric]int, len(MetricOrder))
	s.ByMetric = make([]MetricStats, len(MetricOrder))
	for i, m := range MetricOrder {
		idx[m] = i
		s.ByMetric[i] = MetricStats{Report: m, Min: math.Inf(1), Max: math.Inf(-1)}
	}

	sums := make([]float64, len(MetricOrder))
	for _, e := range g.Edges {
		if e.IsSelfLoop() {
			s.SelfLoops++
		}
		i, ok := idx[e.Report]
		if !ok {
			continue
		}
		ms := &s.ByMetric[i]
		ms.Edges++
		ms.Min = math.Min(ms.Min, e.Weight)
		ms.Max = math.Max(ms.Max, e.Weight)
		sums[i] += e.Weight
	}

	for i := range s.ByMetric {
		ms := &s.ByMetric[i]
		if ms.Edges == 0 {
			ms.Min, ms.Max = 0, 0
			continue
		}
		ms.Mean = sums[i] / float64(ms.Edges)
	}
	return s
}

// FilterOptions selects the edges kept by [Graph.Filter].
type FilterOptions struct {
	// MinWeight drops edges whose weight is below it. Nil applies no
	// threshold, so out-of-range weights survive an unfiltered view.
	MinWeight *float64
	// Metrics keeps only edges from these reports. Empty keeps all.
	Metrics []Metric
}

// Filter returns a new graph containing the edges that pass opts.
// Every node is kept, even if it loses all of its edges, so node positions
// stay comparable between filtered and unfiltered views. Edge order is
// preserved. The receiver is not modified.
func (g *Graph) Filter(opts FilterOptions) *Graph {
	out := &Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: make([]Edge, 0, len(g.Edges)),
	}
	for _, e := range g.Edges {
		if opts.MinWeight != nil && e.Weight < *opts.MinWeight {
			continue
		}
		if len(opts.Metrics) > 0 && !slices.Contains(opts.Metrics, e.Report) {
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}
