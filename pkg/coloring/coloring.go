// Package coloring implements first-fit greedy vertex colouring and the
// validator that checks its output.
//
// # Greedy
//
// [Greedy] walks a vertex order and places each vertex into the first colour
// class that holds none of its neighbours, opening a new class only when every
// existing class conflicts. There is no look-ahead, recolouring or
// backtracking, so the result depends only on the order:
//
//	order := ordering.ByDegree(g.Degrees(), ordering.Stream(seed, trial))
//	c := coloring.Greedy(order, g)
//	c.Count() // number of colours used
//
// Each class keeps a bit-vector of the vertices it forbids (the union of its
// members' neighbourhoods), so the conflict test for a class is a single bit
// lookup.
//
// # Validation
//
// [Validate] re-checks a colouring pairwise within each class. A correct
// Greedy never produces [Fail]; callers treat Fail as a defect, not as data.
package coloring

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/chromabench/pkg/graph"
)

// Coloring is an ordered list of colour classes. Class i holds the vertices
// assigned colour i, in the order they were placed.
type Coloring struct {
	Classes [][]int `json:"classes"`
}

// Count returns the number of non-empty classes.
func (c Coloring) Count() int {
	n := 0
	for _, cls := range c.Classes {
		if len(cls) > 0 {
			n++
		}
	}
	return n
}

// Flatten concatenates the classes in colour order.
func (c Coloring) Flatten() []int {
	total := 0
	for _, cls := range c.Classes {
		total += len(cls)
	}
	out := make([]int, 0, total)
	for _, cls := range c.Classes {
		out = append(out, cls...)
	}
	return out
}

// Assignment returns the colour of every vertex in 0..n-1, or -1 for
// vertices that appear in no class.
func (c Coloring) Assignment(n int) []int {
	colors := make([]int, n)
	for i := range colors {
		colors[i] = -1
	}
	for color, cls := range c.Classes {
		for _, v := range cls {
			if v >= 0 && v < n {
				colors[v] = color
			}
		}
	}
	return colors
}

// Greedy colours g by visiting vertices in order with the first-fit rule.
// order should be a permutation of the vertices of g; vertices missing from
// it are left uncoloured.
func Greedy(order []int, g *graph.Graph) Coloring {
	n := uint(g.Len())
	classes := [][]int{{}}
	forbidden := []*bitset.BitSet{bitset.New(n)}

	for _, v := range order {
		color := -1
		for i, f := range forbidden {
			if !f.Test(uint(v)) {
				color = i
				break
			}
		}
		if color < 0 {
			classes = append(classes, []int{})
			forbidden = append(forbidden, bitset.New(n))
			color = len(classes) - 1
		}
		classes[color] = append(classes[color], v)
		forbidden[color].InPlaceUnion(g.NeighborSet(v))
	}

	return Coloring{Classes: classes}
}
