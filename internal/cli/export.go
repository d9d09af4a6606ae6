package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/dimacs"
	"github.com/matzehuels/chromabench/pkg/pipeline"
)

// exportCommand creates the export command, which re-emits a graph in
// canonical DIMACS form: sorted, deduplicated edges and an exact edge count.
// Two files with the same export hash to the same cache entries.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Rewrite a DIMACS graph in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			g, err := dimacs.LoadGraph(args[0])
			if err != nil {
				return err
			}
			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			hash := pipeline.GraphHash(g)
			if err := dimacs.Write(out, g, "source "+filepath.Base(args[0]), "hash "+hash); err != nil {
				return err
			}
			logger.Debug("exported graph", "vertices", g.Len(), "edges", g.EdgeCount(), "hash", hash)

			if output != "" && output != "-" {
				printSuccess("Exported %s", filepath.Base(args[0]))
				printStats(g.Len(), g.EdgeCount(), false)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
