// Package similarity turns per-metric similarity reports into a graph.
//
// # Overview
//
// A similarity dataset holds three independent reports (LCS, cosine and
// Jaccard), each listing pairwise test comparisons with a score. [Build]
// folds the three reports into a single multigraph: one [Node] per distinct
// test identifier and one [Edge] per comparison. The result is what a
// force-directed layout collaborator consumes.
//
// # Ordering
//
// Reports are always visited in [MetricOrder] (lcs, cosine, jaccard) and
// comparisons in document order. Node order is therefore first-seen order
// across that traversal, and edge order is metric order followed by
// within-report order. Both orders are stable and part of the output.
//
// # Multigraph Semantics
//
// The builder never deduplicates edges. Two tests can be linked by up to
// one edge per metric, and repeated comparisons inside one report produce
// repeated edges. Self-comparisons (TestA == TestB) become self-loops.
// Use [Graph.Filter] for an explicit, separate thinning step.
//
// # Input Format
//
// [Decode] and [ReadDataset] accept the JSON produced by the report service:
//
//	{
//	  "lcs_report":     {"similarity_type": "LCS", "comparisons": [...]},
//	  "cosine_report":  {"similarity_type": "Cosine Similarity", "comparisons": [...]},
//	  "jaccard_report": {"similarity_type": "Jaccard Index", "comparisons": [...]}
//	}
//
// Producers disagree on the comparison field spelling, so both
// {"testA", "testB"} and {"test_a", "test_b"} are accepted, and may be mixed
// within one dataset.
//
// # Errors
//
// Missing reports, missing comparison lists and comparisons without test
// identifiers fail the whole call with a MALFORMED_INPUT error from
// pkg/errors. No partial graph is ever returned.
//
// # Concurrency
//
// All functions are pure and allocate their own output; concurrent calls are
// safe. A [Graph] is not safe for concurrent mutation.
package similarity
