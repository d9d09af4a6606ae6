package coloring_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/graph"
)

func TestValidate_DetectsConflict(t *testing.T) {
	g, err := graph.Build(3, []graph.Edge{{U: 1, V: 2}})
	require.NoError(t, err)

	bad := coloring.Coloring{Classes: [][]int{{2, 0, 1}}}
	assert.Equal(t, coloring.Fail, coloring.Validate(bad, g))

	conflict, found := coloring.FindConflict(bad, g)
	require.True(t, found)
	assert.Equal(t, coloring.Conflict{Class: 0, U: 0, V: 1}, conflict)
	assert.Equal(t, "vertices 0 and 1 share colour 0", conflict.String())

	good := coloring.Coloring{Classes: [][]int{{0, 2}, {1}}}
	assert.Equal(t, coloring.Pass, coloring.Validate(good, g))
}

func TestCheckPartition(t *testing.T) {
	tests := []struct {
		name string
		c    coloring.Coloring
		want error
	}{
		{"valid", coloring.Coloring{Classes: [][]int{{0, 2}, {1}}}, nil},
		{"valid with empty class", coloring.Coloring{Classes: [][]int{{0, 1, 2}, {}}}, nil},
		{"missing", coloring.Coloring{Classes: [][]int{{0, 2}}}, coloring.ErrVertexMissing},
		{"repeated", coloring.Coloring{Classes: [][]int{{0, 2}, {1, 2}}}, coloring.ErrVertexRepeated},
		{"unknown", coloring.Coloring{Classes: [][]int{{0, 1, 2, 3}}}, coloring.ErrVertexUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := coloring.CheckPartition(tt.c, 3)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOutcome_Text(t *testing.T) {
	assert.Equal(t, "PASS", coloring.Pass.String())
	assert.Equal(t, "FAIL", coloring.Fail.String())

	data, err := json.Marshal(struct {
		Test coloring.Outcome `json:"test"`
	}{coloring.Pass})
	require.NoError(t, err)
	assert.JSONEq(t, `{"test":"PASS"}`, string(data))

	var o coloring.Outcome
	require.NoError(t, o.UnmarshalText([]byte("FAIL")))
	assert.Equal(t, coloring.Fail, o)
	assert.Error(t, o.UnmarshalText([]byte("MAYBE")))
}

func TestCount_IgnoresEmptyClasses(t *testing.T) {
	c := coloring.Coloring{Classes: [][]int{{0}, {}, {1, 2}}}
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, []int{0, -1, -1, 2}, coloring.Coloring{Classes: [][]int{{0}, {}, {3}}}.Assignment(4))
}
