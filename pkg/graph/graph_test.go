package graph_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromabench/pkg/graph"
)

// cycle4 is the 4-cycle 1-2-3-4-1.
var cycle4 = []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 1}}

func TestBuild_Cycle(t *testing.T) {
	g, err := graph.Build(4, cycle4)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 2, g.MaxDegree())
	assert.Equal(t, []int{2, 2, 2, 2}, g.Degrees())

	assert.True(t, g.Adjacent(0, 1))
	assert.True(t, g.Adjacent(1, 0))
	assert.True(t, g.Adjacent(0, 3))
	assert.False(t, g.Adjacent(0, 2))
	assert.Equal(t, []int{1, 3}, g.Neighbors(0))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []graph.Edge
		want  error
	}{
		{"zero vertices", 0, nil, graph.ErrNoVertices},
		{"negative vertices", -3, nil, graph.ErrNoVertices},
		{"endpoint zero", 3, []graph.Edge{{U: 0, V: 1}}, graph.ErrVertexOutOfRange},
		{"endpoint above n", 3, []graph.Edge{{U: 1, V: 4}}, graph.ErrVertexOutOfRange},
		{"self loop", 3, []graph.Edge{{U: 2, V: 2}}, graph.ErrSelfLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := graph.Build(tt.n, tt.edges)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_DuplicateEdgesIdempotent(t *testing.T) {
	g, err := graph.Build(3, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}})
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []int{1, 2, 1}, g.Degrees())
}

func TestBuild_Edgeless(t *testing.T) {
	g, err := graph.Build(5, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, g.EdgeCount())
	assert.Equal(t, 0, g.MaxDegree())
	assert.Empty(t, g.Edges())
	for v := 0; v < 5; v++ {
		assert.Zero(t, g.Degree(v))
	}
}

func TestDegrees_ReturnsCopy(t *testing.T) {
	g, err := graph.Build(4, cycle4)
	require.NoError(t, err)

	d := g.Degrees()
	d[0] = 99
	assert.Equal(t, 2, g.Degree(0))
}

func TestEdges_Canonical(t *testing.T) {
	a, err := graph.Build(4, cycle4)
	require.NoError(t, err)
	b, err := graph.Build(4, []graph.Edge{{U: 1, V: 4}, {U: 4, V: 3}, {U: 2, V: 1}, {U: 3, V: 2}, {U: 1, V: 2}})
	require.NoError(t, err)

	want := []graph.Edge{{U: 1, V: 2}, {U: 1, V: 4}, {U: 2, V: 3}, {U: 3, V: 4}}
	assert.Equal(t, want, a.Edges())
	assert.Equal(t, want, b.Edges())
}

// TestRandomGraphs_SymmetricAndConsistent checks symmetry and degree
// consistency on random graphs.
func TestRandomGraphs_SymmetricAndConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 50; iter++ {
		n := 1 + rng.IntN(40)
		var edges []graph.Edge
		for i := 0; i < rng.IntN(n*n+1); i++ {
			u, v := 1+rng.IntN(n), 1+rng.IntN(n)
			if u == v {
				continue
			}
			edges = append(edges, graph.Edge{U: u, V: v})
		}

		g, err := graph.Build(n, edges)
		require.NoError(t, err)

		total := 0
		for u := 0; u < n; u++ {
			count := 0
			for v := 0; v < n; v++ {
				assert.Equal(t, g.Adjacent(u, v), g.Adjacent(v, u))
				if g.Adjacent(u, v) {
					count++
				}
			}
			assert.Equal(t, count, g.Degree(u))
			assert.Equal(t, uint(count), g.NeighborSet(u).Count())
			total += count
		}
		assert.Equal(t, total, 2*g.EdgeCount())
		assert.Len(t, g.Edges(), g.EdgeCount())
	}
}
