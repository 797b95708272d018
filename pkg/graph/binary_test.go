package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"arli/pkg/graph"
	"arli/pkg/spatial"
)

func buildTestSpatialGraph() *graph.CompactSpatialGraph[graph.Segment] {
	data := []graph.Segment{
		{LengthMeters: 100, SpeedLimitKmH: 50},
		{LengthMeters: 200, SpeedLimitKmH: 30},
		{LengthMeters: 300, SpeedLimitKmH: 0},
	}
	// 0 -> 1, 1 -> 2, 2 -> 0
	outOff := []uint32{0, 1, 2}
	outRefs := []uint32{1, 2, 0}
	base := graph.FromRowData(data, outOff, outRefs)

	points := []spatial.Position{
		{X: 0, Y: 0},
		{X: 103.0, Y: 1.0},
		{X: 103.1, Y: 1.1},
		{X: 103.2, Y: 1.2},
	}
	geomStart := []uint32{1, 2, 3}
	geomEnd := []uint32{2, 3, 1}

	return graph.NewCompactSpatialGraph(base, points, geomStart, geomEnd)
}

func TestBinaryRoundTrip(t *testing.T) {
	original := buildTestSpatialGraph()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.graph.bin")

	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if loaded.NumNodes() != original.NumNodes() {
		t.Fatalf("NumNodes: got %d, want %d", loaded.NumNodes(), original.NumNodes())
	}
	if loaded.NumEdges() != original.NumEdges() {
		t.Fatalf("NumEdges: got %d, want %d", loaded.NumEdges(), original.NumEdges())
	}

	for id := graph.NodeID(0); id < 3; id++ {
		if *loaded.Data(id) != *original.Data(id) {
			t.Errorf("Data(%d): got %+v, want %+v", id, *loaded.Data(id), *original.Data(id))
		}
		wantOut := original.Neighbors(graph.Forward, id)
		gotOut := loaded.Neighbors(graph.Forward, id)
		if len(wantOut) != len(gotOut) || (len(wantOut) > 0 && wantOut[0] != gotOut[0]) {
			t.Errorf("Neighbors(Forward, %d): got %v, want %v", id, gotOut, wantOut)
		}
		wantGeom := original.Geometry(id)
		gotGeom := loaded.Geometry(id)
		if len(wantGeom) != len(gotGeom) {
			t.Errorf("Geometry(%d) length: got %d, want %d", id, len(gotGeom), len(wantGeom))
			continue
		}
		for i := range wantGeom {
			if wantGeom[i] != gotGeom[i] {
				t.Errorf("Geometry(%d)[%d]: got %v, want %v", id, i, gotGeom[i], wantGeom[i])
			}
		}
	}

	// Incoming adjacency must be correctly re-derived, not merely copied.
	in0 := loaded.Neighbors(graph.Backward, 0)
	if len(in0) != 1 || in0[0] != 2 {
		t.Errorf("Neighbors(Backward, 0) = %v, want [2]", in0)
	}
}

func TestBinaryInvalidMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.graph.bin")
	os.WriteFile(path, []byte("NOT_ARLIGRAF_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644)

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected error for invalid magic bytes")
	}
}

func TestBinaryTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.graph.bin")
	os.WriteFile(path, []byte("ARLIGRAF"), 0644)

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected error for truncated file")
	}
}

func TestBinaryCorruptedChecksum(t *testing.T) {
	original := buildTestSpatialGraph()
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.graph.bin")
	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	raw[len(raw)-1] ^= 0xFF
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected CRC32 mismatch error")
	}
}
