package cascade

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/nodeshift/pkg/graph"
)

func TestSolveScenario(t *testing.T) {
	self := &graph.Node{ID: "self", X: 0, Y: 100} // default height 80
	b := node("B", 0, 150, 240, 40)
	c := node("C", 0, 210, 240, 40)

	moves := Solve(self, 50, []*graph.Node{c, b})

	if moves.Len() != 1 {
		t.Fatalf("moves = %v, want {B: 10}", moves)
	}
	if moves["B"] != 10 {
		t.Errorf("push[B] = %v, want 10", moves["B"])
	}
	if _, ok := moves["C"]; ok {
		t.Errorf("C should be untouched, got push %v", moves["C"])
	}
}

func TestSolve(t *testing.T) {
	self := node("self", 0, 0, 100, 50)

	tests := []struct {
		name       string
		expand     float64
		candidates []*graph.Node
		opts       []Option
		want       MoveSet
	}{
		{
			name:   "empty candidates",
			expand: 500,
			want:   MoveSet{},
		},
		{
			name:       "chained push",
			expand:     100,
			candidates: []*graph.Node{node("a", 0, 60, 100, 30), node("b", 0, 95, 100, 30)},
			// a: 100+10-60=50 → bottom 140; b: 140+10-95=55
			want: MoveSet{"a": 50, "b": 55},
		},
		{
			name:       "early stop skips later overlap",
			expand:     100,
			candidates: []*graph.Node{node("a", 0, 60, 100, 30), node("far", 0, 400, 100, 30), node("after", 0, 405, 100, 30)},
			want:       MoveSet{"a": 50},
		},
		{
			name:       "exact clearance stops",
			expand:     100,
			candidates: []*graph.Node{node("a", 0, 110, 100, 30)},
			want:       MoveSet{},
		},
		{
			name:       "negative expand height",
			expand:     -40,
			candidates: []*graph.Node{node("a", 0, 0, 100, 30)},
			want:       MoveSet{},
		},
		{
			name:       "ties broken by id",
			expand:     100,
			candidates: []*graph.Node{node("z", 0, 50, 100, 20), node("m", 0, 50, 100, 20)},
			// m first: 110-50=60 → bottom 130; z: 140-50=90
			want: MoveSet{"m": 60, "z": 90},
		},
		{
			name:       "custom separation",
			expand:     100,
			candidates: []*graph.Node{node("a", 0, 100, 100, 30)},
			opts:       []Option{WithMinSeparation(25)},
			want:       MoveSet{"a": 25},
		},
		{
			name:       "zero separation",
			expand:     100,
			candidates: []*graph.Node{node("a", 0, 100, 100, 30)},
			opts:       []Option{WithMinSeparation(0)},
			want:       MoveSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Solve(self, tt.expand, tt.candidates, tt.opts...)
			if len(got) != len(tt.want) {
				t.Fatalf("Solve() = %v, want %v", got, tt.want)
			}
			for id, d := range tt.want {
				if got[id] != d {
					t.Errorf("push[%s] = %v, want %v", id, got[id], d)
				}
			}
		})
	}
}

func TestSolveDoesNotReorderInput(t *testing.T) {
	self := node("self", 0, 0, 100, 50)
	in := []*graph.Node{node("b", 0, 90, 10, 10), node("a", 0, 60, 10, 10)}
	before := slices.Clone(in)

	Solve(self, 100, in)

	for i := range in {
		if in[i] != before[i] {
			t.Fatal("Solve() reordered the candidates slice")
		}
	}
}

func TestSolveProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for iter := 0; iter < 200; iter++ {
		nodes := randomNodes(r, 25)
		self := nodes[0]
		expand := float64(r.IntN(400) - 50)

		candidates := SelectCandidates(self, nodes, graph.RootDataset, nil)
		moves := Solve(self, expand, candidates)

		// Displacements are strictly positive.
		for id, d := range moves {
			if d <= 0 {
				t.Fatalf("iter %d: push[%s] = %v, want > 0", iter, id, d)
			}
		}

		// Cascaded nodes keep MinSeparation between consecutive boxes.
		var moved []*graph.Node
		for _, n := range candidates {
			if _, ok := moves[n.ID]; ok {
				moved = append(moved, n)
			}
		}
		slices.SortFunc(moved, func(a, b *graph.Node) int {
			if a.Y != b.Y {
				if a.Y < b.Y {
					return -1
				}
				return 1
			}
			if a.ID < b.ID {
				return -1
			}
			return 1
		})
		for i := 1; i < len(moved); i++ {
			prevBottom := moved[i-1].Y + moves[moved[i-1].ID] + moved[i-1].BoxHeight()
			top := moved[i].Y + moves[moved[i].ID]
			if top < prevBottom+MinSeparation {
				t.Fatalf("iter %d: %s top %v < %s bottom %v + %v",
					iter, moved[i].ID, top, moved[i-1].ID, prevBottom, MinSeparation)
			}
		}
	}
}

func TestSolveNoOverlapInvariance(t *testing.T) {
	self := node("self", 0, 0, 100, 50)
	nodes := []*graph.Node{
		self,
		node("right", 100, 10, 100, 50),
		node("far", 500, 60, 100, 50),
	}

	for _, expand := range []float64{0, 50, 1000, 1e6} {
		candidates := SelectCandidates(self, nodes, graph.RootDataset, nil)
		if got := Solve(self, expand, candidates); got.Len() != 0 {
			t.Errorf("expand %v: Solve() = %v, want empty", expand, got)
		}
	}
}

func TestMoveSetHelpers(t *testing.T) {
	m := MoveSet{"b": 5, "a": 10, "c": 2.5}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
	if got := m.IDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("IDs() = %v", got)
	}
	if got := m.Total(); got != 17.5 {
		t.Errorf("Total() = %v, want 17.5", got)
	}
}
