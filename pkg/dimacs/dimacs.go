// Package dimacs reads and writes graphs in the DIMACS colouring format and
// lists the graph files of a corpus directory.
//
// The accepted format is line oriented:
//
//	c comment lines are ignored
//	p edge 11 20      problem line: optional format token, vertices, edges
//	e 1 2             one line per edge, 1-indexed endpoints
//
// The edge count of the problem line is only a capacity hint; it is not
// checked against the number of edge lines. Blank lines and other DIMACS line
// kinds (n, x, ...) are skipped.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	errs "github.com/matzehuels/chromabench/pkg/errors"
	"github.com/matzehuels/chromabench/pkg/graph"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// MaxVertices is the largest vertex count a problem line may declare. The
// adjacency model needs one bit per vertex pair, so this caps it at 128 MiB.
const MaxVertices = 1 << 15

// edgeHint caps the slice capacity taken from the declared edge count.
const edgeHint = 1 << 16

// Instance is a parsed DIMACS file.
type Instance struct {
	// Vertices is the vertex count declared by the problem line.
	Vertices int
	// DeclaredEdges is the edge count declared by the problem line.
	DeclaredEdges int
	// Format is the optional format token of the problem line ("edge", "col").
	Format string
	// Edges holds the edge lines in file order, 1-indexed.
	Edges []graph.Edge
}

// Graph builds the adjacency model of the instance.
func (in *Instance) Graph() (*graph.Graph, error) {
	g, err := graph.Build(in.Vertices, in.Edges)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "build graph")
	}
	return g, nil
}

// ParseError describes a malformed line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a DIMACS graph from r.
// Errors carry code PARSE_ERROR and wrap a *ParseError.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		in      *Instance
		lineNum int
	)
	fail := func(format string, args ...any) error {
		return errs.Wrap(errs.ErrCodeParse, &ParseError{Line: lineNum, Msg: fmt.Sprintf(format, args...)}, "invalid DIMACS input")
	}

	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "p":
			if in != nil {
				return nil, fail("duplicate problem line")
			}
			args := fields[1:]
			format := ""
			if len(args) == 3 {
				format, args = args[0], args[1:]
			}
			if len(args) != 2 {
				return nil, fail("problem line needs vertex and edge counts, got %q", sc.Text())
			}
			n, err := parseCount(args[0])
			if err != nil {
				return nil, fail("vertex count: %v", err)
			}
			if n > MaxVertices {
				return nil, fail("vertex count %d exceeds the limit of %d", n, MaxVertices)
			}
			m, err := parseCount(args[1])
			if err != nil {
				return nil, fail("edge count: %v", err)
			}
			in = &Instance{Vertices: n, DeclaredEdges: m, Format: format, Edges: make([]graph.Edge, 0, min(m, edgeHint))}

		case "e":
			if in == nil {
				return nil, fail("edge before problem line")
			}
			if len(fields) != 3 {
				return nil, fail("edge line needs two endpoints, got %q", sc.Text())
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fail("edge endpoint %q is not an integer", fields[1])
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fail("edge endpoint %q is not an integer", fields[2])
			}
			in.Edges = append(in.Edges, graph.Edge{U: u, V: v})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeParse, err, "read DIMACS input")
	}
	if in == nil {
		lineNum = 0
		return nil, fail("missing problem line")
	}
	return in, nil
}

// ParseFile reads a DIMACS graph from path.
// A missing or unreadable file yields code FILE_NOT_FOUND.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// LoadGraph parses path and builds its graph.
func LoadGraph(path string) (*graph.Graph, error) {
	in, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	g, err := in.Graph()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}
