// Package graph provides the immutable adjacency model used by the colouring
// search.
//
// A [Graph] stores one fixed-size bit-vector per vertex, so neighbour
// membership tests are single word operations and the per-vertex degree is
// cached at build time. Graphs are built once per input file with [Build] and
// then shared read-only by every trial of the search for that file.
//
// # Indexing
//
// Edges are supplied 1-indexed, as they appear in DIMACS files, and stored
// 0-indexed:
//
//	g, err := graph.Build(4, []graph.Edge{{1, 2}, {2, 3}, {3, 4}, {4, 1}})
//	if err != nil {
//	    return err
//	}
//	g.Adjacent(0, 1) // true
//	g.Degree(0)      // 2
//
// # Invariants
//
//   - Adjacency is symmetric: Adjacent(u, v) == Adjacent(v, u).
//   - Degree(v) always equals the number of set bits in NeighborSet(v).
//   - Duplicate edges are idempotent; self loops are rejected with [ErrSelfLoop].
//
// Nothing in this package mutates a Graph after Build returns, which is what
// makes sharing it across goroutines safe.
package graph
