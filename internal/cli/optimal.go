package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/optimal"
)

// optimalCommand creates the optimal command, which lists the known
// chromatic numbers the results are judged against.
func (c *CLI) optimalCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "optimal [name]",
		Short: "List the known chromatic numbers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("optimal") {
				opts.OptimalFile = file
			}
			table, err := optimal.LoadWithDefault(opts.OptimalFile)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				k, ok := table.Lookup(args[0])
				if !ok {
					return errs.New(errs.ErrCodeFileNotFound, "no known optimum for %q", args[0])
				}
				fmt.Println(k)
				return nil
			}

			rows := make([][]string, 0, len(table))
			for _, name := range table.Names() {
				k, _ := table.Lookup(name)
				rows = append(rows, []string{name, strconv.Itoa(k)})
			}
			printTable([]string{"Graph", "χ"}, rows)
			printDetail("%d graphs", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "optimal", "", "TOML file of extra known chromatic numbers")
	return cmd
}
