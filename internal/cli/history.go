package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/archive"
	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/report"
)

// historyCommand creates the history command, which reads archived runs.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		uri   string
		limit int64
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show archived runs (requires a MongoDB archive)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("archive-uri") {
				opts.Archive.URI = uri
			}
			if opts.Archive.URI == "" {
				return errs.New(errs.ErrCodeInvalidConfig, "no archive configured (set --archive-uri or [archive] uri)")
			}

			ctx := cmd.Context()
			arc, err := archive.Connect(ctx, opts.Archive.URI, opts.Archive.Database, opts.Archive.Collection)
			if err != nil {
				return err
			}
			defer arc.Close(context.Background())

			if len(args) == 1 {
				run, err := arc.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printRunHeader(run)
				printResultTable(run.Rows)
				for _, f := range run.Failures {
					printWarning("%s: %s", f.Filename, f.Error)
				}
				return nil
			}

			runs, err := arc.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No archived runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.RunID,
					r.Started.Local().Format(time.DateTime),
					strconv.Itoa(len(r.Rows)),
					strconv.Itoa(r.SolvedCount()),
					strconv.Itoa(len(r.Failures)),
					strconv.Itoa(r.Trials),
				})
			}
			printTable([]string{"Run", "Started", "Graphs", "Solved", "Failed", "Trials"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "archive-uri", "", "MongoDB URI of the run archive")
	cmd.Flags().Int64Var(&limit, "limit", 10, "number of runs to list")
	return cmd
}

func printRunHeader(s *report.Summary) {
	printSuccess("Run %s", StyleHighlight.Render(s.RunID))
	printKeyValue("started", s.Started.Local().Format(time.DateTime))
	printKeyValue("duration", s.Finished.Sub(s.Started).Round(time.Millisecond).String())
	printKeyValue("trials", strconv.Itoa(s.Trials))
	printKeyValue("seed", strconv.FormatUint(s.Seed, 10))
	printKeyValue("solved", strconv.Itoa(s.SolvedCount())+"/"+strconv.Itoa(len(s.Rows)))
	printNewline()
}
