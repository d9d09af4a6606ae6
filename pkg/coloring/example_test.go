package coloring_test

import (
	"fmt"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/coloring/ordering"
	"github.com/matzehuels/chromabench/pkg/graph"
)

func ExampleGreedy() {
	// Square 1-2-3-4-1 visited in index order.
	g, _ := graph.Build(4, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 1}})

	c := coloring.Greedy([]int{0, 1, 2, 3}, g)
	fmt.Println(c.Classes)
	fmt.Println(c.Count(), coloring.Validate(c, g))
	// Output:
	// [[0 2] [1 3]]
	// 2 PASS
}

func ExampleGreedy_star() {
	// Star with centre 1: the centre always comes first.
	g, _ := graph.Build(4, []graph.Edge{{U: 1, V: 2}, {U: 1, V: 3}, {U: 1, V: 4}})

	order := ordering.ByDegree(g.Degrees(), ordering.Stream(1, 0))
	c := coloring.Greedy(order, g)
	fmt.Println(order[0], c.Count())
	// Output:
	// 0 2
}
