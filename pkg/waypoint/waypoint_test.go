package waypoint

import (
	"math"
	"testing"

	"arli/pkg/graph"
	"arli/pkg/spatial"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) < eps }

func TestSnapToGeometryMidpoint(t *testing.T) {
	geom := []spatial.Position{
		{X: 13.34, Y: 52.46},
		{X: 13.341, Y: 52.461},
	}
	// Roughly on the line, offset slightly.
	pos := spatial.Position{X: 13.3405, Y: 52.4605}
	snapped, ok := snapToGeometry(geom, pos, 200.0)
	if !ok {
		t.Fatal("expected a snap within 200m")
	}
	if snapped.Factor < 0 || snapped.Factor > 1 {
		t.Errorf("factor = %v, want in [0,1]", snapped.Factor)
	}
}

func TestSnapToGeometryTooFar(t *testing.T) {
	geom := []spatial.Position{
		{X: 0, Y: 0},
		{X: 0, Y: 0.001},
	}
	pos := spatial.Position{X: 5, Y: 5}
	if _, ok := snapToGeometry(geom, pos, 100.0); ok {
		t.Error("expected no snap for a point thousands of km away")
	}
}

func TestSnapToGeometryEmpty(t *testing.T) {
	if _, ok := snapToGeometry(nil, spatial.Position{}, 100.0); ok {
		t.Error("expected no snap for empty geometry")
	}
}

// fakeGraph implements GeometrySpatial directly over a node->geometry map,
// without pulling in a full CompactSpatialGraph.
type fakeGraph struct {
	geometries map[graph.NodeID][]spatial.Position
}

func (g fakeGraph) AppendGeometry(id graph.NodeID, dst []spatial.Position) []spatial.Position {
	return append(dst, g.geometries[id]...)
}

func (g fakeGraph) FindNodes(bbox spatial.BoundingBox) []graph.NodeID {
	ids := make([]graph.NodeID, 0, len(g.geometries))
	for id := range g.geometries {
		ids = append(ids, id)
	}
	return ids
}

func TestMatchReturnsClosestFirst(t *testing.T) {
	g := fakeGraph{geometries: map[graph.NodeID][]spatial.Position{
		0: {{X: 0, Y: 0}, {X: 0, Y: 0.01}},
		1: {{X: 0.0001, Y: 0}, {X: 0.0001, Y: 0.01}},
	}}

	matched := Match[fakeGraph](g, spatial.Position{X: 0, Y: 0.005})
	if len(matched.Snapped) != 2 {
		t.Fatalf("len(Snapped) = %d, want 2", len(matched.Snapped))
	}
	if matched.Snapped[0].Node != 0 {
		t.Errorf("closest node = %d, want 0", matched.Snapped[0].Node)
	}
	if matched.Snapped[0].Position.Distance > matched.Snapped[1].Position.Distance {
		t.Error("snapped candidates not sorted closest-first")
	}
}

func TestMatchTruncatesToFour(t *testing.T) {
	geoms := make(map[graph.NodeID][]spatial.Position)
	for i := graph.NodeID(0); i < 10; i++ {
		geoms[i] = []spatial.Position{{X: float32(i) * 0.00001, Y: 0}, {X: float32(i) * 0.00001, Y: 0.001}}
	}
	g := fakeGraph{geometries: geoms}
	matched := Match[fakeGraph](g, spatial.Position{X: 0, Y: 0.0005})
	if len(matched.Snapped) != maxCandidates {
		t.Fatalf("len(Snapped) = %d, want %d", len(matched.Snapped), maxCandidates)
	}
}
