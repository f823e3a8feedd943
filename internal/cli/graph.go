package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/testgraph/pkg/pipeline"
	"github.com/matzehuels/testgraph/pkg/similarity"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string   // output file; stdout when empty
	format    string   // json or dot
	minWeight float64  // drop edges below this similarity
	metrics   []string // keep only these reports
	stats     bool     // print per-metric statistics to stderr
	refresh   bool     // ignore cached output
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Build a test similarity graph from LCS, cosine and Jaccard reports",
		Long: `Build a similarity multigraph from a JSON document holding lcs_report,
cosine_report and jaccard_report. Every test becomes a node; every comparison
becomes an edge weighted by its similarity. Use "-" to read from stdin.`,
		Example: `  testgraph graph similarity.json -o graph.json
  testgraph graph similarity.json --metric cosine --min-weight 0.8 --format dot
  cat similarity.json | testgraph graph - --stats`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json (default), dot")
	cmd.Flags().Float64Var(&opts.minWeight, "min-weight", 0, "drop edges with similarity below this value")
	cmd.Flags().StringSliceVarP(&opts.metrics, "metric", "m", nil, "keep only edges from these metrics: lcs, cosine, jaccard")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print graph statistics to stderr")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path string, opts graphOpts) error {
	// Without --min-weight or a configured min_weight every edge is kept.
	minWeight := c.config.MinWeight
	if cmd.Flags().Changed("min-weight") {
		minWeight = &opts.minWeight
	}

	metrics := make([]similarity.Metric, 0, len(opts.metrics))
	for _, s := range opts.metrics {
		m, err := similarity.ParseMetric(s)
		if err != nil {
			return err
		}
		metrics = append(metrics, m)
	}

	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.BuildGraph(ctx, input, pipeline.GraphOptions{
		Format:    resolveFormat(opts.format, opts.output, c.config.Format),
		MinWeight: minWeight,
		Metrics:   metrics,
		Refresh:   opts.refresh,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, opts.output, res.Artifact); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	s := res.GraphStats
	if opts.output != "" {
		prog.done(fmt.Sprintf("Wrote %s", opts.output))
		printFile(stderr, opts.output)
		printSummary(stderr, []string{
			fmt.Sprintf("%d nodes", s.Nodes),
			fmt.Sprintf("%d edges", s.Edges),
		}, res.CacheHit)
	}
	if s.Nodes > 0 && s.Edges == 0 {
		printWarning(stderr, "no edges left after filtering")
	}
	if opts.stats {
		printGraphStats(stderr, s)
	}
	return nil
}
