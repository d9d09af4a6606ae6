package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/dimacs"
	"github.com/matzehuels/chromabench/pkg/pipeline"
	"github.com/matzehuels/chromabench/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	searchFlags
	output   string  // output file (derived from the input when empty)
	format   string  // dot, svg, png or pdf
	engine   string  // Graphviz layout engine
	detailed bool    // label vertices with their colour index
	scale    float64 // PNG scale factor
}

// renderCommand creates the render command, which draws the best colouring
// of a graph with Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: render.FormatSVG,
		engine: render.EngineNeato,
		scale:  2.0,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Colour a DIMACS graph and draw it (dot, svg, png, pdf)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !render.ValidFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'png', or 'pdf')", opts.format)
			}
			if !render.ValidEngines[opts.engine] {
				return fmt.Errorf("invalid engine: %s", opts.engine)
			}
			popts, err := c.searchOptions(cmd, &opts.searchFlags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], popts, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png, pdf")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "layout engine: neato (default), circo, fdp, sfdp, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label vertices with their colour")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(render.ValidFormats, false))
	_ = cmd.RegisterFlagCompletionFunc("engine", completeValues(render.ValidEngines, false))

	return cmd
}

// runRender colours the graph at input and writes the drawing.
func (c *CLI) runRender(ctx context.Context, input string, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	g, err := dimacs.LoadGraph(input)
	if err != nil {
		return err
	}
	res, _, err := c.colorFile(ctx, input, popts)
	if err != nil {
		return err
	}
	logger.Info("coloured graph", "graph", res.Name, "colors", res.Best.Colors)

	dot := render.ToDOT(g, res.Best.Coloring, render.Options{Engine: opts.engine, Detailed: opts.detailed})
	data, err := render.Render(ctx, dot, opts.format, opts.scale)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := opts.output
	if path == "" {
		path = basePath(input) + "." + opts.format
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if path != "-" {
		printSuccess("Rendered %s with %d colours", res.Name, res.Best.Colors)
		printFile(path)
	}
	return nil
}
