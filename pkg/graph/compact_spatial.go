package graph

import (
	"sort"

	"arli/pkg/spatial"

	"github.com/golang/geo/s2"
)

// block is one entry of the spatial index: an S2 cell at the fixed
// indexing level paired with a node whose geometry touches it.
type block struct {
	cell s2.CellID
	node NodeID
}

// CompactSpatialGraph wraps a CompactGraph with per-node polyline geometry
// and an S2-cell bucketed spatial index, both built once at construction
// and immutable thereafter.
type CompactSpatialGraph[T any] struct {
	*CompactGraph[T]

	points    []spatial.Position // index 0 reserved as sentinel
	geomStart []uint32
	geomEnd   []uint32
	blocks    []block // sorted by cell
}

// NewCompactSpatialGraph wraps base with geometry and builds the spatial
// index. points[0] must be the reserved sentinel; geomStart/geomEnd are
// per-node (start, end) index pairs into points, one entry per node of
// base, using the forward/reverse half-open range convention: start <= end
// is a forward range [start, end); start > end is a reverse range read
// from start down to end+1.
func NewCompactSpatialGraph[T any](base *CompactGraph[T], points []spatial.Position, geomStart, geomEnd []uint32) *CompactSpatialGraph[T] {
	g := &CompactSpatialGraph[T]{
		CompactGraph: base,
		points:       points,
		geomStart:    geomStart,
		geomEnd:      geomEnd,
	}
	g.buildSpatialIndex()
	return g
}

func (g *CompactSpatialGraph[T]) buildSpatialIndex() {
	n := g.NumNodes()
	blocks := make([]block, 0, n*2)
	var scratch []spatial.Position
	seen := make(map[s2.CellID]bool)

	for i := 0; i < n; i++ {
		scratch = scratch[:0]
		scratch = g.AppendGeometry(NodeID(i), scratch)
		for k := range seen {
			delete(seen, k)
		}
		for _, p := range scratch {
			cell := spatial.CellAt(p)
			if seen[cell] {
				continue
			}
			seen[cell] = true
			blocks = append(blocks, block{cell: cell, node: NodeID(i)})
		}
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].cell < blocks[j].cell })
	g.blocks = blocks
}

// AppendGeometry appends node id's polyline to dst, following the
// forward/reverse half-open range convention, and returns the extended
// slice.
func (g *CompactSpatialGraph[T]) AppendGeometry(id NodeID, dst []spatial.Position) []spatial.Position {
	s, e := g.geomStart[id], g.geomEnd[id]
	if s <= e {
		for i := s; i < e; i++ {
			dst = append(dst, g.points[i])
		}
	} else {
		for i := s; i > e; i-- {
			dst = append(dst, g.points[i])
		}
	}
	return dst
}

// Geometry returns node id's polyline as a freshly allocated slice.
func (g *CompactSpatialGraph[T]) Geometry(id NodeID) []spatial.Position {
	return g.AppendGeometry(id, nil)
}

// FindNodes returns every node id whose geometry touches any S2 cell
// intersected by bbox at the fixed indexing level. Duplicates may appear
// when a node touches more than one covering cell; results are not sorted
// by distance.
func (g *CompactSpatialGraph[T]) FindNodes(bbox spatial.BoundingBox) []NodeID {
	var result []NodeID
	for _, cell := range spatial.Cover(bbox) {
		lo := sort.Search(len(g.blocks), func(i int) bool { return g.blocks[i].cell >= cell })
		for i := lo; i < len(g.blocks) && g.blocks[i].cell == cell; i++ {
			result = append(result, g.blocks[i].node)
		}
	}
	return result
}
