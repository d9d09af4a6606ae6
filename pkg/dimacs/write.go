package dimacs

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/chromabench/pkg/graph"
)

// Write emits g in DIMACS format with a "p edge" problem line and one edge
// line per distinct edge in canonical order. Each comment becomes a "c" line.
func Write(w io.Writer, g *graph.Graph, comments ...string) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		fmt.Fprintf(bw, "c %s\n", c)
	}
	fmt.Fprintf(bw, "p edge %d %d\n", g.Len(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "e %d %d\n", e.U, e.V)
	}
	return bw.Flush()
}
