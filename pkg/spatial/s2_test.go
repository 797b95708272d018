package spatial

import "testing"

func TestCoverNonEmpty(t *testing.T) {
	bbox := Envelope(Position{X: 103.8198, Y: 1.3521}, 100)
	cells := Cover(bbox)
	if len(cells) == 0 {
		t.Fatal("Cover returned no cells for a non-degenerate bbox")
	}
	if len(cells) > 100 {
		t.Errorf("Cover returned %d cells, want <= 100 (max_cells)", len(cells))
	}
}

func TestCellAtLevel(t *testing.T) {
	id := CellAt(Position{X: 103.8198, Y: 1.3521})
	if id.Level() != SpatialIndexLevel {
		t.Errorf("CellAt level = %d, want %d", id.Level(), SpatialIndexLevel)
	}
}

func TestEnvelope(t *testing.T) {
	center := Position{X: 103.8198, Y: 1.3521}
	bbox := Envelope(center, 100)
	if bbox.Min.X >= center.X || bbox.Max.X <= center.X {
		t.Errorf("envelope does not straddle center longitude: %+v", bbox)
	}
	if bbox.Min.Y >= center.Y || bbox.Max.Y <= center.Y {
		t.Errorf("envelope does not straddle center latitude: %+v", bbox)
	}
}

func TestBoundingBoxOf(t *testing.T) {
	pts := []Position{{X: 1, Y: 1}, {X: 3, Y: 0}, {X: 2, Y: 5}}
	bbox, ok := BoundingBoxOf(pts)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if bbox.Min != (Position{X: 1, Y: 0}) || bbox.Max != (Position{X: 3, Y: 5}) {
		t.Errorf("bbox = %+v", bbox)
	}

	if _, ok := BoundingBoxOf(nil); ok {
		t.Error("expected ok=false for empty points")
	}
}
