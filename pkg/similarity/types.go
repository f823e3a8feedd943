package similarity

import (
	"strings"

	"github.com/matzehuels/testgraph/pkg/errors"
)

// Metric identifies one of the three report slots of a [Dataset].
type Metric string

// Supported metrics.
const (
	MetricLCS     Metric = "lcs"
	MetricCosine  Metric = "cosine"
	MetricJaccard Metric = "jaccard"
)

// MetricOrder is the fixed traversal order used by [Build].
// It determines node first-seen order and edge order.
var MetricOrder = []Metric{MetricLCS, MetricCosine, MetricJaccard}

// reportKeys maps each metric to its JSON key in the dataset document.
var reportKeys = map[Metric]string{
	MetricLCS:     "lcs_report",
	MetricCosine:  "cosine_report",
	MetricJaccard: "jaccard_report",
}

// Key returns the dataset JSON key holding this metric's report.
func (m Metric) Key() string { return reportKeys[m] }

// ParseMetric converts a user-supplied metric name (case-insensitive).
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := reportKeys[m]; !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown metric %q (want lcs, cosine or jaccard)", s)
	}
	return m, nil
}

// Comparison is one scored pair of tests under one metric.
// Similarity is expected in [0,1] but is not validated.
type Comparison struct {
	TestA      string  `json:"test_a"`
	TestB      string  `json:"test_b"`
	Similarity float64 `json:"similarity"`
}

// Report is the list of comparisons computed by one metric.
// A nil Comparisons slice means the list is missing, which [Build] rejects;
// use an empty non-nil slice for a report without comparisons.
type Report struct {
	SimilarityType string       `json:"similarity_type"`
	Comparisons    []Comparison `json:"comparisons"`
}

// Dataset holds exactly one report per metric.
type Dataset struct {
	LCS     Report `json:"lcs_report"`
	Cosine  Report `json:"cosine_report"`
	Jaccard Report `json:"jaccard_report"`
}

// Report returns the report stored for m.
func (d *Dataset) Report(m Metric) *Report {
	switch m {
	case MetricLCS:
		return &d.LCS
	case MetricCosine:
		return &d.Cosine
	case MetricJaccard:
		return &d.Jaccard
	}
	return nil
}

// ComparisonCount returns the number of comparisons across all reports.
func (d *Dataset) ComparisonCount() int {
	return len(d.LCS.Comparisons) + len(d.Cosine.Comparisons) + len(d.Jaccard.Comparisons)
}

// Node is a test in the similarity graph. Two nodes with equal IDs are the
// same test.
type Node struct {
	ID string `json:"id"`
}

// Edge links two tests with the score one metric assigned to them.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	// Metric is the similarity_type of the report the edge came from.
	Metric string `json:"metric"`
	// Report is the dataset slot the edge came from.
	Report Metric `json:"report"`
}

// IsSelfLoop reports whether the edge compares a test with itself.
func (e Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Graph is the node/edge multigraph produced by [Build].
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeCount returns the number of distinct tests.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.Edges) }
