package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/pipeline"
)

// runFlags holds the command-line flags for the run command.
type runFlags struct {
	searchFlags
	input      string // corpus directory
	output     string // CSV result file
	formats    string // comma-separated output formats
	workers    int    // graphs searched in parallel
	archiveURI string // MongoDB URI for run archiving
	tui        bool   // live progress view
}

// runCommand creates the run command, the benchmark over a whole directory.
func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Colour every graph in a directory and write the result table",
		Long: `Run lists the input directory, colours each graph with the randomized
greedy search and writes one CSV row per graph:

  FILENAME, AMOUNT_COLORS, TIME, GROUPS, TEST, OPTIMAL_SOLUTION, SOLVED

Graphs that cannot be read or parsed are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.runOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runBenchmark(cmd.Context(), opts, flags.tui)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.input, "input", "i", pipeline.DefaultInputDir, "directory of DIMACS graphs")
	cmd.Flags().StringVarP(&flags.output, "output", "o", pipeline.DefaultOutput, "CSV result file")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): csv (default), json (comma-separated)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "graphs searched in parallel (0 = one per CPU)")
	cmd.Flags().StringVar(&flags.archiveURI, "archive-uri", "", "MongoDB URI to archive the run summary")
	cmd.Flags().BoolVar(&flags.tui, "tui", false, "show a live progress view")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(pipeline.ValidFormats, true))

	return cmd
}

func (c *CLI) runOptions(cmd *cobra.Command, flags *runFlags) (pipeline.Options, error) {
	opts, err := c.searchOptions(cmd, &flags.searchFlags)
	if err != nil {
		return opts, err
	}
	fs := cmd.Flags()
	if fs.Changed("input") {
		opts.InputDir = flags.input
	}
	if fs.Changed("output") {
		opts.Output = flags.output
	}
	if fs.Changed("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	if fs.Changed("workers") {
		opts.Workers = flags.workers
	}
	if fs.Changed("archive-uri") {
		opts.Archive.URI = flags.archiveURI
	}
	return opts, opts.ValidateAndSetDefaults()
}

// runBenchmark executes the run and writes its outputs.
func (c *CLI) runBenchmark(ctx context.Context, opts pipeline.Options, tui bool) error {
	logger := loggerFromContext(ctx)

	runner, closeRunner, err := c.newRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer closeRunner()

	prog := newProgress(logger)
	var res *pipeline.Result
	if tui {
		res, err = runWithTUI(ctx, runner, opts)
	} else {
		res, err = runner.Execute(ctx, opts)
	}
	if err != nil {
		return err
	}
	prog.done("Run complete")

	paths, err := pipeline.WriteOutputs(res, opts)
	if err != nil {
		return err
	}

	printNewline()
	printResultTable(res.Rows)
	printNewline()
	printSuccess("Coloured %d graphs, %d solved", len(res.Rows), res.SolvedCount())
	printDetail("Run %s · %s", res.RunID, res.Duration.Round(time.Millisecond))
	if res.CacheHits > 0 {
		printDetail("%d results from cache", res.CacheHits)
	}
	for _, f := range res.Failures {
		printWarning("%s: %s", f.Filename, f.Error)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
