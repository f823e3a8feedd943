// Package pipeline runs the decode → build/merge → export flow shared by
// every testgraph entry point.
//
// Two pipelines exist, one per input document:
//
//  1. Graph: similarity reports → [similarity.Build] → [similarity.Graph.Filter]
//     → force-layout JSON or DOT
//  2. Journey: journey tree → [journey.Merge] → hierarchy JSON or DOT
//
// Outputs are cached by input content and options, so re-running the same
// command on an unchanged file skips the work entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.BuildGraph(ctx, data, pipeline.GraphOptions{
//	    Format:    graph.FormatJSON,
//	    Metrics:   []similarity.Metric{similarity.MetricCosine},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Artifact)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/testgraph/pkg/cache"
	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/graph"
	"github.com/matzehuels/testgraph/pkg/journey"
	"github.com/matzehuels/testgraph/pkg/similarity"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = graph.FormatJSON

	// DefaultMode is the journey merge mode when none is given.
	DefaultMode = journey.ModeShallow

	// DefaultRootLabel names the root of a merged journey tree.
	DefaultRootLabel = journey.MergedRootLabel
)

// =============================================================================
// Options
// =============================================================================

// GraphOptions configures a similarity graph run.
type GraphOptions struct {
	Format  string              `json:"format,omitempty"`
	Metrics []similarity.Metric `json:"metrics,omitempty"`

	// MinWeight drops edges below it. Nil keeps every edge.
	MinWeight *float64 `json:"min_weight,omitempty"`

	// Refresh bypasses the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *GraphOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := graph.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.MinWeight != nil && *o.MinWeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min weight must not be negative, got %g", *o.MinWeight)
	}
	if len(o.Metrics) > 0 {
		metrics := make([]similarity.Metric, len(o.Metrics))
		for i, m := range o.Metrics {
			parsed, err := similarity.ParseMetric(string(m))
			if err != nil {
				return err
			}
			metrics[i] = parsed
		}
		o.Metrics = metrics
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Filter returns the filter these options describe.
func (o *GraphOptions) Filter() similarity.FilterOptions {
	return similarity.FilterOptions{MinWeight: o.MinWeight, Metrics: o.Metrics}
}

// KeyOpts returns the cache key options. Metric order does not change the
// output, so metrics are sorted.
func (o *GraphOptions) KeyOpts() cache.GraphKeyOpts {
	metrics := make([]string, len(o.Metrics))
	for i, m := range o.Metrics {
		metrics[i] = string(m)
	}
	slices.Sort(metrics)
	metrics = slices.Compact(metrics)
	return cache.GraphKeyOpts{Format: o.Format, MinWeight: o.MinWeight, Metrics: metrics}
}

// TreeOptions configures a journey merge run.
type TreeOptions struct {
	Format    string       `json:"format,omitempty"`
	Mode      journey.Mode `json:"mode,omitempty"`
	RootLabel string       `json:"root_label,omitempty"`

	// Refresh bypasses the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *TreeOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := graph.ValidateFormat(o.Format); err != nil {
		return err
	}
	mode, err := journey.ParseMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode
	if o.RootLabel == "" {
		o.RootLabel = DefaultRootLabel
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// KeyOpts returns the cache key options.
func (o *TreeOptions) KeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{Format: o.Format, Mode: string(o.Mode), RootLabel: o.RootLabel}
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Format is the format of Artifact.
	Format string

	// Artifact is the encoded output.
	Artifact []byte

	// GraphStats is set by graph runs, computed on the filtered graph.
	GraphStats *similarity.Stats

	// TreeStats is set by journey runs.
	TreeStats *TreeStats

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool

	Duration time.Duration
}

// TreeStats describes a journey tree before and after merging.
type TreeStats struct {
	InputNodes  int `json:"input_nodes"`
	OutputNodes int `json:"output_nodes"`
	Journeys    int `json:"journeys"`
	Depth       int `json:"depth"`
}

// cached is the envelope stored in the cache, so stats survive a hit.
type cached struct {
	Artifact   []byte            `json:"artifact"`
	GraphStats *similarity.Stats `json:"graph_stats,omitempty"`
	TreeStats  *TreeStats        `json:"tree_stats,omitempty"`
}
