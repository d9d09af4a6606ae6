package graph

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Graph is an undirected simple graph on vertices 0..Len()-1.
//
// The zero value is not usable; construct graphs with [Build].
type Graph struct {
	n      int
	adj    []*bitset.BitSet
	degree []int
	edges  int
	maxDeg int
}

// Build constructs a graph with n vertices from 1-indexed edges.
//
// Every edge (u, v) inserts v into neighbors(u) and u into neighbors(v).
// Repeated edges, in either direction, are counted once.
func Build(n int, edges []Edge) (*Graph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrNoVertices, n)
	}

	adj := make([]*bitset.BitSet, n)
	for i := range adj {
		adj[i] = bitset.New(uint(n))
	}

	count := 0
	for _, e := range edges {
		if e.U < 1 || e.U > n || e.V < 1 || e.V > n {
			return nil, fmt.Errorf("%w: (%d, %d) with n=%d", ErrVertexOutOfRange, e.U, e.V, n)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("%w: vertex %d", ErrSelfLoop, e.U)
		}
		u, v := uint(e.U-1), uint(e.V-1)
		if adj[u].Test(v) {
			continue
		}
		adj[u].Set(v)
		adj[v].Set(u)
		count++
	}

	g := &Graph{
		n:      n,
		adj:    adj,
		degree: make([]int, n),
		edges:  count,
	}
	for v, row := range adj {
		d := int(row.Count())
		g.degree[v] = d
		g.maxDeg = max(g.maxDeg, d)
	}
	return g, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return g.n }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Degree returns the number of neighbours of v.
func (g *Graph) Degree(v int) int { return g.degree[v] }

// MaxDegree returns the largest vertex degree, or 0 for an edgeless graph.
func (g *Graph) MaxDegree() int { return g.maxDeg }

// Degrees returns a copy of the degree table indexed by vertex.
func (g *Graph) Degrees() []int {
	out := make([]int, g.n)
	copy(out, g.degree)
	return out
}

// Adjacent reports whether u and v share an edge.
func (g *Graph) Adjacent(u, v int) bool {
	return g.adj[u].Test(uint(v))
}

// NeighborSet returns the neighbour bit-vector of v.
// The returned set is owned by the graph and must not be modified.
func (g *Graph) NeighborSet(v int) *bitset.BitSet {
	return g.adj[v]
}

// Neighbors returns the neighbours of v in ascending order.
func (g *Graph) Neighbors(v int) []int {
	out := make([]int, 0, g.degree[v])
	for i, ok := g.adj[v].NextSet(0); ok; i, ok = g.adj[v].NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Edges returns every edge once, 1-indexed with U < V, in lexicographic order.
// The result is canonical: two graphs with the same adjacency produce the
// same slice regardless of how their input edges were ordered or repeated.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u := 0; u < g.n; u++ {
		row := g.adj[u]
		for v, ok := row.NextSet(uint(u + 1)); ok; v, ok = row.NextSet(v + 1) {
			out = append(out, Edge{U: u + 1, V: int(v) + 1})
		}
	}
	return out
}
