package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/graph"
)

// Layout engines understood by Graphviz.
const (
	EngineNeato = "neato"
	EngineCirco = "circo"
	EngineFDP   = "fdp"
	EngineSFDP  = "sfdp"
	EngineDot   = "dot"
)

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	EngineNeato: true,
	EngineCirco: true,
	EngineFDP:   true,
	EngineSFDP:  true,
	EngineDot:   true,
}

// Options configures DOT generation.
type Options struct {
	// Engine is the Graphviz layout engine. Empty means neato.
	Engine string

	// Detailed adds the colour index to each vertex label.
	Detailed bool
}

// palette holds the first class colours.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// ClassColor returns the fill colour of class i.
func ClassColor(i int) string {
	if i < len(palette) {
		return palette[i]
	}
	const golden = 0.618033988749895
	h := float64(i) * golden
	h -= float64(int(h))
	return fmt.Sprintf("%.3f 0.550 0.900", h)
}

// ToDOT converts g and its colouring c to Graphviz DOT format.
// Vertices are labelled 1..n as in the DIMACS input. Vertices absent from c
// are drawn white.
func ToDOT(g *graph.Graph, c coloring.Coloring, opts Options) string {
	engine := opts.Engine
	if engine == "" {
		engine = EngineNeato
	}
	assign := c.Assignment(g.Len())

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3, fixedsize=false];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n")
	buf.WriteString("\n")

	for v := 0; v < g.Len(); v++ {
		label := strconv.Itoa(v + 1)
		fill := "white"
		if k := assign[v]; k >= 0 {
			fill = ClassColor(k)
			if opts.Detailed {
				label = fmt.Sprintf("%d\\nc%d", v+1, k)
			}
		}
		fmt.Fprintf(&buf, "  %d [label=\"%s\", fillcolor=%q];\n", v+1, label, fill)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg tag with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
