package similarity

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/testgraph/pkg/errors"
)

// Build folds the three reports of ds into a multigraph.
//
// Reports are visited in [MetricOrder]. For every comparison, TestA and then
// TestB are registered as nodes if not seen before, and one edge is appended
// unconditionally. The returned graph therefore has exactly one node per
// distinct identifier and exactly ds.ComparisonCount() edges.
//
// Build returns a MALFORMED_INPUT error, and no graph, if a report has a nil
// comparison list or a comparison has an empty test identifier.
func Build(ds Dataset) (*Graph, error) {
	if err := validate(&ds); err != nil {
		return nil, err
	}

	registry := orderedmap.New[string, Node]()
	edges := make([]Edge, 0, ds.ComparisonCount())

	for _, m := range MetricOrder {
		r := ds.Report(m)
		for _, c := range r.Comparisons {
			register(registry, c.TestA)
			register(registry, c.TestB)
			edges = append(edges, Edge{
				Source: c.TestA,
				Target: c.TestB,
				Weight: c.Similarity,
				Metric: r.SimilarityType,
				Report: m,
			})
		}
	}

	nodes := make([]Node, 0, registry.Len())
	for pair := registry.Oldest(); pair != nil; pair = pair.Next() {
		nodes = append(nodes, pair.Value)
	}

	return &Graph{Nodes: nodes, Edges: edges}, nil
}

func register(registry *orderedmap.OrderedMap[string, Node], id string) {
	if _, ok := registry.Get(id); !ok {
		registry.Set(id, Node{ID: id})
	}
}

// validate checks the whole dataset up front so Build never allocates a
// graph it would have to discard.
func validate(ds *Dataset) error {
	for _, m := range MetricOrder {
		r := ds.Report(m)
		if r.Comparisons == nil {
			return errors.Malformed("%s: missing comparisons", m.Key())
		}
		for i, c := range r.Comparisons {
			if c.TestA == "" {
				return errors.Malformed("%s: comparison %d: missing testA", m.Key(), i)
			}
			if c.TestB == "" {
				return errors.Malformed("%s: comparison %d: missing testB", m.Key(), i)
			}
		}
	}
	return nil
}
