package cascade

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/nodeshift/pkg/graph"
)

func TestApply(t *testing.T) {
	a := node("a", 0, 10, 10, 10)
	b := node("b", 0, 20, 10, 10)
	c := node("c", 0, 30, 10, 10)
	nodes := []*graph.Node{a, b, c}
	moves := MoveSet{"b": 15}

	down := Apply(nodes, moves, true)

	if len(down) != 3 {
		t.Fatalf("len = %d, want 3", len(down))
	}
	if down[0] != a || down[2] != c {
		t.Error("untouched nodes should keep their identity")
	}
	if down[1] == b {
		t.Error("moved node should be a new value")
	}
	if down[1].Y != 35 {
		t.Errorf("moved Y = %v, want 35", down[1].Y)
	}
	if b.Y != 20 {
		t.Errorf("input node mutated: Y = %v", b.Y)
	}
	if nodes[1] != b {
		t.Error("input slice mutated")
	}

	up := Apply(down, moves, false)
	if up[1].Y != 20 {
		t.Errorf("reverted Y = %v, want 20", up[1].Y)
	}
	if up[0] != a || up[2] != c {
		t.Error("untouched nodes should keep their identity after revert")
	}
}

func TestApplyEmptyMoveSet(t *testing.T) {
	nodes := []*graph.Node{node("a", 0, 0, 1, 1)}
	out := Apply(nodes, MoveSet{}, true)
	if len(out) != 1 || out[0] != nodes[0] {
		t.Error("empty MoveSet should keep every node")
	}
	out[0] = nil
	if nodes[0] == nil {
		t.Error("Apply should return a new slice")
	}
}

func TestApplyIgnoresUnknownIDs(t *testing.T) {
	nodes := []*graph.Node{node("a", 0, 0, 1, 1)}
	out := Apply(nodes, MoveSet{"ghost": 10}, true)
	if out[0] != nodes[0] {
		t.Error("unknown IDs should not touch other nodes")
	}
}

func TestApplyRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	for iter := 0; iter < 100; iter++ {
		nodes := randomNodes(r, 30)
		self := nodes[r.IntN(len(nodes))]
		moves := Solve(self, float64(r.IntN(300)), SelectCandidates(self, nodes, graph.RootDataset, nil))

		back := Apply(Apply(nodes, moves, true), moves, false)
		for i := range nodes {
			if back[i].Y != nodes[i].Y {
				t.Fatalf("iter %d: %s Y = %v, want %v", iter, nodes[i].ID, back[i].Y, nodes[i].Y)
			}
		}
	}
}
