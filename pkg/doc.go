// Package pkg provides the core libraries of chromabench, a benchmark of a
// randomized greedy heuristic for graph colouring.
//
// # Overview
//
// Each graph is coloured many times. A trial orders the vertices by
// decreasing degree, breaking ties with a seeded shuffle, and gives every
// vertex the lowest colour none of its neighbours has. The search keeps the
// trial with the fewest colours and the report compares it with the known
// chromatic number of well-known DIMACS instances.
//
// # Architecture
//
// The data flow of a benchmark run:
//
//	input directory
//	     ↓
//	[dimacs] (list and parse DIMACS files)
//	     ↓
//	[graph] (bitset adjacency)
//	     ↓
//	[search] (restart search over [coloring] trials, graphs fanned out)
//	     ↓
//	[report] (CSV table and JSON summary, judged against [optimal])
//
// [pipeline] wires these steps together behind a Runner used by both the CLI
// and the HTTP [server], with an optional result [cache] and a MongoDB
// [archive] of finished runs.
//
// # Quick Start
//
// Colour one graph:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/chromabench/pkg/dimacs"
//	    "github.com/matzehuels/chromabench/pkg/optimal"
//	    "github.com/matzehuels/chromabench/pkg/search"
//	)
//
//	g, _ := dimacs.LoadGraph("input_files/myciel3.col.txt")
//	best, _ := search.Search(context.Background(), g, search.Options{
//	    Name:   "myciel3.col.txt",
//	    Trials: 5000,
//	    Seed:   42,
//	})
//	solved := optimal.Default().Solved("myciel3.col.txt", best.Colors)
//
// Run a whole directory:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{InputDir: "input_files"})
//	_ = report.ExportCSV(res.Rows, pipeline.DefaultOutput)
//
// # Main Packages
//
// ## Algorithm
//
// [graph] - Undirected simple graph on vertices 0..n-1 with one bitset row
// per vertex.
//
// [coloring] - Greedy first-fit colouring, colour classes, and the validator
// that checks a colouring is proper and complete. [coloring/ordering]
// computes the degree ordering with seeded tie-breaking.
//
// [search] - Restart search keeping the strictly best trial, plus the
// generic fan-out used to search many graphs in parallel.
//
// ## Input and Output
//
// [dimacs] - DIMACS edge-format reader and writer, and corpus listing.
//
// [optimal] - Known chromatic numbers, embedded and user-extendable.
//
// [report] - Result rows, CSV and JSON writers.
//
// [render] - Colourings drawn with Graphviz (DOT, SVG, PNG, PDF).
//
// ## Infrastructure
//
// [pipeline] - Options, config file, and the Runner.
//
// [cache] - Result cache keyed by graph content, trials and seed: file,
// Redis or none.
//
// [archive] - Run summaries stored in MongoDB.
//
// [server] - HTTP colouring service.
//
// [observability] - Hooks for search, cache and HTTP events.
//
// [errors] - Error codes shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./...                 # All tests
//	go test ./pkg/search/...      # Specific package
//	go test -bench . ./pkg/coloring
package pkg
