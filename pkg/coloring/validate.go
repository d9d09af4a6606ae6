package coloring

import (
	"errors"
	"fmt"

	"github.com/matzehuels/chromabench/pkg/graph"
)

// Outcome is the result of [Validate].
type Outcome bool

const (
	// Pass means no class contains two adjacent vertices.
	Pass Outcome = true
	// Fail means at least one class contains an edge.
	Fail Outcome = false
)

// String returns "PASS" or "FAIL".
func (o Outcome) String() string {
	if o {
		return "PASS"
	}
	return "FAIL"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "PASS":
		*o = Pass
	case "FAIL":
		*o = Fail
	default:
		return fmt.Errorf("invalid outcome %q", b)
	}
	return nil
}

// Conflict is a pair of adjacent vertices found in the same class.
type Conflict struct {
	Class int
	U, V  int
}

func (c Conflict) String() string {
	return fmt.Sprintf("vertices %d and %d share colour %d", c.U, c.V, c.Class)
}

// Validate checks every pair of distinct vertices within each class and
// returns Fail if any pair is adjacent in g.
func Validate(c Coloring, g *graph.Graph) Outcome {
	_, found := FindConflict(c, g)
	return Outcome(!found)
}

// FindConflict returns the first adjacent pair sharing a class.
func FindConflict(c Coloring, g *graph.Graph) (Conflict, bool) {
	for color, cls := range c.Classes {
		for i, u := range cls {
			for _, v := range cls[i+1:] {
				if g.Adjacent(u, v) {
					return Conflict{Class: color, U: u, V: v}, true
				}
			}
		}
	}
	return Conflict{}, false
}

var (
	// ErrVertexMissing is returned by [CheckPartition] when a vertex has no colour.
	ErrVertexMissing = errors.New("vertex not coloured")

	// ErrVertexRepeated is returned by [CheckPartition] when a vertex appears twice.
	ErrVertexRepeated = errors.New("vertex coloured more than once")

	// ErrVertexUnknown is returned by [CheckPartition] for indices outside 0..n-1.
	ErrVertexUnknown = errors.New("vertex out of range")
)

// CheckPartition verifies that the classes of c partition 0..n-1.
func CheckPartition(c Coloring, n int) error {
	seen := make([]bool, n)
	for _, cls := range c.Classes {
		for _, v := range cls {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: %d", ErrVertexUnknown, v)
			}
			if seen[v] {
				return fmt.Errorf("%w: %d", ErrVertexRepeated, v)
			}
			seen[v] = true
		}
	}
	for v, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: %d", ErrVertexMissing, v)
		}
	}
	return nil
}
