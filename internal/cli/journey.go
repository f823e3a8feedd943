package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/testgraph/pkg/journey"
	"github.com/matzehuels/testgraph/pkg/pipeline"
)

// journeyOpts holds the command-line flags for the journey command.
type journeyOpts struct {
	output    string // output file; stdout when empty
	format    string // json or dot
	mode      string // shallow or deep
	rootLabel string // label of the merged root
	stats     bool   // print node counts to stderr
	refresh   bool   // ignore cached output
}

// journeyCommand creates the journey command.
func (c *CLI) journeyCommand() *cobra.Command {
	var opts journeyOpts

	cmd := &cobra.Command{
		Use:   "journey <file>",
		Short: "Merge same-named test journeys into a single tree",
		Long: `Merge sibling nodes that share a name in a journey tree. The shallow mode
merges the top-level journeys only; deep merges every level. Use "-" to read
from stdin.`,
		Example: `  testgraph journey journeys.json -o merged.json
  testgraph journey journeys.json --mode deep --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.mode == "" {
				opts.mode = c.config.Mode
			}
			if opts.rootLabel == "" {
				opts.rootLabel = c.config.RootLabel
			}
			return c.runJourney(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json (default), dot")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "merge mode: shallow (default), deep")
	cmd.Flags().StringVar(&opts.rootLabel, "root-label", "", fmt.Sprintf("label of the merged root (default %q)", journey.MergedRootLabel))
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print tree statistics to stderr")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output")

	return cmd
}

func (c *CLI) runJourney(cmd *cobra.Command, path string, opts journeyOpts) error {
	mode, err := journey.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.MergeJourneys(ctx, input, pipeline.TreeOptions{
		Format:    resolveFormat(opts.format, opts.output, c.config.Format),
		Mode:      mode,
		RootLabel: opts.rootLabel,
		Refresh:   opts.refresh,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, opts.output, res.Artifact); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	s := res.TreeStats
	if opts.output != "" {
		prog.done(fmt.Sprintf("Wrote %s", opts.output))
		printFile(stderr, opts.output)
		printSummary(stderr, []string{
			fmt.Sprintf("%d journeys", s.Journeys),
			fmt.Sprintf("%d nodes", s.OutputNodes),
		}, res.CacheHit)
	}
	if opts.stats {
		printTreeStats(stderr, s)
	}
	return nil
}
