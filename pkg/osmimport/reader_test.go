package osmimport

import (
	"testing"

	"github.com/paulmach/osm"

	"arli/pkg/spatial"
)

func TestSplitWayClosesEdgeAtIntersection(t *testing.T) {
	w := wayRecord{
		nodes:      []osm.NodeID{1, 2, 3, 4},
		properties: DefaultEdgeProperties(),
	}
	uses := map[osm.NodeID]int{1: 1, 2: 2, 3: 1, 4: 1} // node 2 is an intersection
	coords := map[osm.NodeID]spatial.Position{
		1: {X: 0, Y: 0},
		2: {X: 1, Y: 0},
		3: {X: 2, Y: 0},
		4: {X: 3, Y: 0},
	}

	var skipped int
	edges := splitWay(w, uses, coords, BBox{}, false, &skipped)
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2 (split at node 2)", len(edges))
	}
	if edges[0].Source != 1 || edges[0].Target != 2 {
		t.Errorf("edges[0] = %d->%d, want 1->2", edges[0].Source, edges[0].Target)
	}
	if edges[1].Source != 2 || edges[1].Target != 4 {
		t.Errorf("edges[1] = %d->%d, want 2->4", edges[1].Source, edges[1].Target)
	}
	if len(edges[1].Geometry) != 3 {
		t.Errorf("edges[1].Geometry has %d points, want 3 (node 2, 3, 4)", len(edges[1].Geometry))
	}
}

func TestSplitWaySkipsMissingCoordinates(t *testing.T) {
	w := wayRecord{nodes: []osm.NodeID{1, 2}, properties: DefaultEdgeProperties()}
	uses := map[osm.NodeID]int{1: 1, 2: 1}
	coords := map[osm.NodeID]spatial.Position{1: {X: 0, Y: 0}} // node 2 missing

	var skipped int
	edges := splitWay(w, uses, coords, BBox{}, false, &skipped)
	if edges != nil {
		t.Errorf("got %d edges, want none when a node's coordinates are missing", len(edges))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestSplitWayBBoxFilter(t *testing.T) {
	w := wayRecord{nodes: []osm.NodeID{1, 2}, properties: DefaultEdgeProperties()}
	uses := map[osm.NodeID]int{1: 1, 2: 1}
	coords := map[osm.NodeID]spatial.Position{
		1: {X: 0, Y: 0},
		2: {X: 50, Y: 50}, // far outside the bbox below
	}
	bbox := BBox{MinLat: -1, MaxLat: 1, MinLng: -1, MaxLng: 1}

	var skipped int
	edges := splitWay(w, uses, coords, bbox, true, &skipped)
	if edges != nil {
		t.Errorf("got %d edges, want none outside bbox", len(edges))
	}
}
