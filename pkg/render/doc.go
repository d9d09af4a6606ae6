// Package render draws a coloured graph with Graphviz.
//
// # Overview
//
// [ToDOT] converts a graph and its colouring to undirected DOT source where
// every vertex is filled with the colour of its class. [RenderSVG] lays the
// DOT out in-process with [github.com/goccy/go-graphviz]; [ToPDF] and
// [ToPNG] convert the SVG with the external rsvg-convert tool.
//
//	dot := render.ToDOT(g, best.Coloring, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # Layout
//
// Benchmark graphs are undirected and often dense, so the default engine is
// neato (spring model). Small structured graphs such as Mycielski graphs
// read better with circo; set [Options.Engine].
//
// # Palette
//
// The first classes use a fixed qualitative palette. Classes beyond it get
// generated HSV colours spaced by the golden angle, so adjacent class
// indices stay visually distinct.
package render
