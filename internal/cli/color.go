package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/pipeline"
	"github.com/matzehuels/chromabench/pkg/report"
)

// colorCommand creates the color command for a single graph.
func (c *CLI) colorCommand() *cobra.Command {
	var (
		flags       searchFlags
		asJSON      bool
		showClasses bool
	)

	cmd := &cobra.Command{
		Use:   "color [file]",
		Short: "Colour one DIMACS graph and print the best colouring found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.searchOptions(cmd, &flags)
			if err != nil {
				return err
			}
			res, table, err := c.colorFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			row := res.Row(table)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(row)
			}
			printColorSummary(row, res.CacheHit)
			if showClasses {
				printNewline()
				for i, class := range res.Best.Coloring.Classes {
					printKeyValue(fmt.Sprintf("colour %d", i), report.FormatGroups(class))
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result row as JSON")
	cmd.Flags().BoolVar(&showClasses, "classes", false, "list the vertices of every colour class")

	return cmd
}

// colorFile searches the graph at path behind a spinner and returns the
// result with the optimal table it is judged against.
func (c *CLI) colorFile(ctx context.Context, path string, opts pipeline.Options) (*pipeline.GraphResult, optimal.Table, error) {
	table, err := optimal.LoadWithDefault(opts.OptimalFile)
	if err != nil {
		return nil, nil, err
	}

	runner, closeRunner, err := c.newRunner(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	defer closeRunner()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Colouring %s (%d trials)", filepath.Base(path), opts.Trials))
	spinner.Start()
	res, err := runner.ColorFile(ctx, path, opts)
	if err != nil {
		if isCancelled(err) {
			spinner.Stop()
		} else {
			spinner.StopWithError(fmt.Sprintf("Could not colour %s", filepath.Base(path)))
		}
		return nil, nil, err
	}
	spinner.Stop()
	return res, table, nil
}

func printColorSummary(row report.Row, cached bool) {
	status := StyleWarning.Render("not solved")
	if row.Solved {
		status = StyleSuccess.Render("solved")
	}
	printSuccess("%s: %s colours, %s", row.Filename, StyleNumber.Render(strconv.Itoa(row.Colors)), status)
	printStats(row.Vertices, row.Edges, cached)
	printNewline()

	optimum := report.UnknownOptimum
	if row.OptimalKnown {
		optimum = strconv.Itoa(row.Optimal)
	}
	printKeyValue("optimal", optimum)
	printKeyValue("test", row.Test.String())
	printKeyValue("trials", strconv.Itoa(row.Trials))
	printKeyValue("best trial", strconv.Itoa(row.BestAt))
	printKeyValue("time", row.Time.Round(time.Microsecond).String())
	printKeyValue("groups", report.FormatGroups(row.Groups))
}
