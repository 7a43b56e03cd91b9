package cascade_test

import (
	"fmt"

	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

func ExampleSolve() {
	self := &graph.Node{ID: "orders", X: 0, Y: 100}
	below := []*graph.Node{
		{ID: "C", X: 0, Y: 210, Height: 40},
		{ID: "B", X: 0, Y: 150, Height: 40},
	}

	moves := cascade.Solve(self, 50, below)
	for _, id := range moves.IDs() {
		fmt.Printf("%s +%.0f\n", id, moves[id])
	}
	// Output:
	// B +10
}

func ExampleApply() {
	nodes := []*graph.Node{
		{ID: "A", Y: 0},
		{ID: "B", Y: 100},
	}
	moves := cascade.MoveSet{"B": 30}

	down := cascade.Apply(nodes, moves, true)
	up := cascade.Apply(down, moves, false)

	fmt.Println(down[1].Y, up[1].Y, down[0] == nodes[0])
	// Output:
	// 130 100 true
}
