package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/server"
)

// serveCommand creates the serve command, the HTTP colouring service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags       searchFlags
		addr        string
		maxTrials   int
		maxVertices int
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the colouring search over HTTP",
		Long: `Serve starts an HTTP service:

  POST /v1/color    colour the DIMACS graph in the request body
  POST /v1/render   colour and draw it (format=svg|dot)
  GET  /v1/optimal  list the known chromatic numbers
  GET  /healthz     liveness

The search flags set the defaults for requests that omit trials or seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.searchOptions(cmd, &flags)
			if err != nil {
				return err
			}
			table, err := optimal.LoadWithDefault(opts.OptimalFile)
			if err != nil {
				return err
			}
			runner, closeRunner, err := c.newRunner(ctx, opts)
			if err != nil {
				return err
			}
			defer closeRunner()

			srv := server.New(server.Config{
				Runner:      runner,
				Defaults:    opts,
				Optimal:     table,
				MaxTrials:   maxTrials,
				MaxVertices: maxVertices,
				Timeout:     timeout,
				Logger:      c.Logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxTrials, "max-trials", server.DefaultMaxTrials, "largest trials value a request may ask for")
	cmd.Flags().IntVar(&maxVertices, "max-vertices", server.DefaultMaxVertices, "largest vertex count a request graph may declare")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request search timeout")
	return cmd
}
