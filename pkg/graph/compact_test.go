package graph

import "testing"

func neighborSet(g *CompactGraph[string], dir Direction, id NodeID) map[NodeID]bool {
	set := make(map[NodeID]bool)
	for _, n := range g.Neighbors(dir, id) {
		set[n] = true
	}
	return set
}

func TestCompactGraphCSR(t *testing.T) {
	data := []string{"a", "b", "c", "d"}
	g := FromRowData(data, []uint32{0, 2, 3, 4}, []uint32{1, 3, 2, 3})

	if g.NumNodes() != 4 {
		t.Fatalf("NumNodes() = %d, want 4", g.NumNodes())
	}
	if g.NumEdges() != 4 {
		t.Fatalf("NumEdges() = %d, want 4", g.NumEdges())
	}

	fwd0 := neighborSet(g, Forward, 0)
	if len(fwd0) != 2 || !fwd0[1] || !fwd0[3] {
		t.Errorf("forward_neighbors(0) = %v, want {1,3}", fwd0)
	}

	fwd2 := neighborSet(g, Forward, 2)
	if len(fwd2) != 1 || !fwd2[3] {
		t.Errorf("forward_neighbors(2) = %v, want {3}", fwd2)
	}

	bwd1 := neighborSet(g, Backward, 1)
	if len(bwd1) != 1 || !bwd1[0] {
		t.Errorf("backward_neighbors(1) = %v, want {0}", bwd1)
	}

	bwd3 := neighborSet(g, Backward, 3)
	if len(bwd3) != 2 || !bwd3[0] || !bwd3[2] {
		t.Errorf("backward_neighbors(3) = %v, want {0,2}", bwd3)
	}
}

func TestCompactGraphEmpty(t *testing.T) {
	g := FromRowData[string](nil, nil, nil)
	if g.NumNodes() != 0 || g.NumEdges() != 0 {
		t.Errorf("expected empty graph, got %d nodes %d edges", g.NumNodes(), g.NumEdges())
	}
}

// TestCompactGraphInvariants checks universal invariants 1 and 2 from the
// testable properties: offsets are monotonic and within bounds, and the
// forward/backward adjacency multisets agree.
func TestCompactGraphInvariants(t *testing.T) {
	data := []string{"a", "b", "c", "d", "e"}
	g := FromRowData(data, []uint32{0, 2, 3, 4, 5}, []uint32{1, 3, 2, 3, 4})

	n := g.NumNodes()
	e := g.NumEdges()
	for i := 0; i < n; i++ {
		if g.outOff[i] > g.outOff[i+1] || g.outOff[i+1] > uint32(e) {
			t.Errorf("out_off[%d..%d] out of range: %d, %d (E=%d)", i, i+1, g.outOff[i], g.outOff[i+1], e)
		}
		if g.inOff[i] < uint32(e) || g.inOff[i+1] > uint32(2*e) || g.inOff[i] > g.inOff[i+1] {
			t.Errorf("in_off[%d..%d] out of range: %d, %d", i, i+1, g.inOff[i], g.inOff[i+1])
		}
	}

	forwardPairs := make(map[[2]NodeID]bool)
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(Forward, NodeID(u)) {
			forwardPairs[[2]NodeID{NodeID(u), v}] = true
		}
	}
	backwardPairs := make(map[[2]NodeID]bool)
	for v := 0; v < n; v++ {
		for _, u := range g.Neighbors(Backward, NodeID(v)) {
			backwardPairs[[2]NodeID{u, NodeID(v)}] = true
		}
	}
	if len(forwardPairs) != len(backwardPairs) {
		t.Fatalf("forward/backward pair count mismatch: %d vs %d", len(forwardPairs), len(backwardPairs))
	}
	for p := range forwardPairs {
		if !backwardPairs[p] {
			t.Errorf("pair %v present in forward but not backward", p)
		}
	}
}
