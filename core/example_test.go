package core_test

import (
	"fmt"

	"github.com/katalvlaran/coordgame/core"
)

// ExampleGraph demonstrates creation and canonical edge enumeration.
func ExampleGraph() {
	g := core.NewGraph()

	// Edges auto-add their endpoints; orientation is irrelevant.
	_, _ = g.AddEdge("1", "0")
	_, _ = g.AddEdge("1", "2")
	_, _ = g.AddEdge("2", "0")

	fmt.Println("Vertices:", g.Vertices())
	for _, e := range g.Edges() {
		fmt.Println(e.From, "-", e.To)
	}
	fmt.Println("Edge 2-1 exists?", g.HasEdge("2", "1"))

	// Output:
	// Vertices: [0 1 2]
	// 0 - 1
	// 0 - 2
	// 1 - 2
	// Edge 2-1 exists? true
}

// ExampleInducedSubgraph keeps a vertex subset and every edge inside it.
func ExampleInducedSubgraph() {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B")
	_, _ = g.AddEdge("B", "C")
	_, _ = g.AddEdge("C", "D")

	sub := core.InducedSubgraph(g, map[string]bool{"A": true, "B": true, "D": true})
	fmt.Println(sub.Vertices(), sub.EdgeCount())

	// Output:
	// [A B D] 1
}
