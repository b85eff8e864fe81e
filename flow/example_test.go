package flow_test

import (
	"fmt"

	"github.com/katalvlaran/coordgame/flow"
)

// ExampleDinic demonstrates Dinic on a network with two augmenting paths.
// Network:
//
//	s→a(5)→t(4)
//	s→b(3)→t(6)
//
// Expected max-flow = 4 + 3 = 7; the cut separates {s, a} from {b, t}.
func ExampleDinic() {
	const s, a, b, t = 0, 1, 2, 3
	nw := flow.NewNetwork(4)
	_ = nw.AddArc(s, a, 5)
	_ = nw.AddArc(a, t, 4)
	_ = nw.AddArc(s, b, 3)
	_ = nw.AddArc(b, t, 6)

	maxFlow, _ := flow.Dinic(nw, s, t, flow.DefaultOptions())
	fmt.Println(maxFlow)
	fmt.Println(nw.SourceSide(s, 1e-9))
	// Output:
	// 7
	// [true true false false]
}
