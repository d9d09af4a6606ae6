// Package report turns search results into result rows and writes them as
// CSV or JSON.
//
// The CSV layout is the benchmark's historical format, one row per graph:
//
//	FILENAME,AMOUNT_COLORS,TIME,GROUPS,TEST,OPTIMAL_SOLUTION,SOLVED
//	myciel3.col.txt,4,0.0000121,"[0, 2, 5, 1, ...]",PASS,4,true
//
// TIME is the wall time in seconds of the trial that produced the reported
// colouring. GROUPS is the colouring flattened in colour order, so the vertex
// list of class 0 comes first. OPTIMAL_SOLUTION is "unknown" for instances
// missing from the known-optimal table, and SOLVED is then false.
package report

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/search"
)

// DefaultCSVName is the result file name used when none is configured.
const DefaultCSVName = "greedy_with_vertex_degree_sort_and_randomize.csv"

// UnknownOptimum is written in place of an unknown chromatic number.
const UnknownOptimum = "unknown"

// Row is one graph's result line.
type Row struct {
	Filename     string           `json:"filename"`
	Colors       int              `json:"colors"`
	Time         time.Duration    `json:"time_ns"`
	Groups       []int            `json:"groups"`
	Test         coloring.Outcome `json:"test"`
	Optimal      int              `json:"optimal,omitempty"`
	OptimalKnown bool             `json:"optimal_known"`
	Solved       bool             `json:"solved"`

	// Not part of the CSV layout.
	Vertices int  `json:"vertices"`
	Edges    int  `json:"edges"`
	Trials   int  `json:"trials"`
	BestAt   int  `json:"best_trial"`
	Cached   bool `json:"cached,omitempty"`
}

// NewRow builds the row for a finished search of the graph called name.
func NewRow(name string, best *search.Best, table optimal.Table) Row {
	r := Row{
		Filename: name,
		Colors:   best.Colors,
		Time:     best.Elapsed,
		Groups:   best.Coloring.Flatten(),
		Test:     best.Outcome,
		Trials:   best.Trials,
		BestAt:   best.Index,
	}
	r.Optimal, r.OptimalKnown = table.Lookup(name)
	r.Solved = table.Solved(name, best.Colors)
	return r
}

// Failure records a graph that produced no row.
type Failure struct {
	Filename string `json:"filename"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error"`
}

// SortRows orders rows by file name.
func SortRows(rows []Row) {
	slices.SortFunc(rows, func(a, b Row) int { return strings.Compare(a.Filename, b.Filename) })
}
