package graph

import "errors"

var (
	// ErrNoVertices is returned by [Build] when the vertex count is not positive.
	ErrNoVertices = errors.New("graph must have at least one vertex")

	// ErrVertexOutOfRange is returned by [Build] when an edge endpoint is
	// outside 1..n.
	ErrVertexOutOfRange = errors.New("edge endpoint out of range")

	// ErrSelfLoop is returned by [Build] when an edge joins a vertex to itself.
	// A self loop would make the vertex conflict with every colour class,
	// including its own, so such graphs have no proper colouring.
	ErrSelfLoop = errors.New("self loop")
)

// Edge is an undirected edge between two 1-indexed vertices.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Normalized returns the edge with U <= V.
func (e Edge) Normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}
