package search

import (
	"math"
	"testing"

	"arli/pkg/graph"
)

// buildS4Graph builds the fixture: data [1,2,3,4,5], edges
// {(0,1),(1,2),(2,3),(3,4),(3,1),(2,4)}.
func buildS4Graph() *graph.DynamicGraph[int] {
	g := graph.NewDynamicGraph[int]()
	for _, v := range []int{1, 2, 3, 4, 5} {
		g.AddNode(v)
	}
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(3, 4)
	g.AddEdge(3, 1)
	g.AddEdge(2, 4)
	return g
}

func s4Cost(dir graph.Direction, node, neighbor graph.NodeID) float64 {
	from, to := int(node), int(neighbor)
	if dir == graph.Backward {
		from, to = to, from
	}
	if to > from {
		return float64(to-from) + 1
	}
	return float64(from - to)
}

func TestSpaceSettlesAllNodesThenExhausts(t *testing.T) {
	g := buildS4Graph()
	s := NewSpace(g.NumNodes())
	s.Init(0)

	settledCount := 0
	for i := 0; i < 5; i++ {
		_, ok := s.Update(g, graph.Forward, s4Cost)
		if !ok {
			t.Fatalf("update %d: frontier exhausted early", i)
		}
		settledCount++
	}
	if settledCount != 5 {
		t.Fatalf("settled %d nodes, want 5", settledCount)
	}
	for id := graph.NodeID(0); id < 5; id++ {
		if _, ok := s.IsSettled(id); !ok {
			t.Errorf("node %d not settled after 5 updates", id)
		}
	}

	if _, ok := s.Update(g, graph.Forward, s4Cost); ok {
		t.Error("6th update should report frontier exhausted")
	}
}

func TestSpaceUnwindReturnsStartToEndOrder(t *testing.T) {
	g := buildS4Graph()
	s := NewSpace(g.NumNodes())
	s.Init(0)
	for {
		if _, ok := s.Update(g, graph.Forward, s4Cost); !ok {
			break
		}
	}

	path := s.Unwind(3)
	if len(path) == 0 || path[0] != 0 || path[len(path)-1] != 3 {
		t.Errorf("Unwind(3) = %v, want path starting at 0 ending at 3", path)
	}
}

func TestSpaceRelaxOfSettledLabelPanicsOnImprovement(t *testing.T) {
	g := buildS4Graph()
	s := NewSpace(g.NumNodes())
	s.Init(0)
	s.Update(g, graph.Forward, s4Cost) // settles node 0 at cost 0

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when relax would improve a settled label")
		}
	}()
	s.Relax(0, 1, -1)
}

func TestSpaceRelaxOfSettledLabelIgnoredWhenNoImprovement(t *testing.T) {
	g := buildS4Graph()
	s := NewSpace(g.NumNodes())
	s.Init(0)
	s.Update(g, graph.Forward, s4Cost) // settles node 0 at cost 0

	s.Relax(0, 1, 5) // no improvement: must be a silent no-op, not a panic
	cost, ok := s.IsSettled(0)
	if !ok || cost != 0 {
		t.Errorf("IsSettled(0) = (%v, %v), want (0, true) unchanged", cost, ok)
	}
}

func TestSpacePeekTopInfiniteWhenEmpty(t *testing.T) {
	s := NewSpace(3)
	if top := s.PeekTop(); !math.IsInf(top, 1) {
		t.Errorf("PeekTop() on empty space = %v, want +Inf", top)
	}
}

func TestSpaceResetClearsTouchedOnly(t *testing.T) {
	g := buildS4Graph()
	s := NewSpace(g.NumNodes())
	s.Init(0)
	for {
		if _, ok := s.Update(g, graph.Forward, s4Cost); !ok {
			break
		}
	}
	s.Reset()
	for id := graph.NodeID(0); id < 5; id++ {
		if _, ok := s.IsSettled(id); ok {
			t.Errorf("node %d still settled after Reset", id)
		}
	}
}
