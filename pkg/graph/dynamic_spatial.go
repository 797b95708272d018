package graph

import (
	"arli/pkg/spatial"

	"github.com/tidwall/rtree"
)

// DynamicSpatialGraph wraps a DynamicGraph with an R-tree spatial index
// over each node's bounding box, supplied explicitly at insertion time
// rather than derived from the payload, so it works for any T.
type DynamicSpatialGraph[T any] struct {
	*DynamicGraph[T]
	index rtree.RTreeG[NodeID]
}

// NewDynamicSpatialGraph returns an empty graph.
func NewDynamicSpatialGraph[T any]() *DynamicSpatialGraph[T] {
	return &DynamicSpatialGraph[T]{DynamicGraph: NewDynamicGraph[T]()}
}

// AddNode appends a node carrying data with bounding box bbox and returns
// its id.
func (g *DynamicSpatialGraph[T]) AddNode(data T, bbox spatial.BoundingBox) NodeID {
	id := g.DynamicGraph.AddNode(data)
	min, max := toAABB(bbox)
	g.index.Insert(min, max, id)
	return id
}

// FindNodes returns every node whose bounding box intersects bbox.
func (g *DynamicSpatialGraph[T]) FindNodes(bbox spatial.BoundingBox) []NodeID {
	min, max := toAABB(bbox)
	var result []NodeID
	g.index.Search(min, max, func(_, _ [2]float64, id NodeID) bool {
		result = append(result, id)
		return true
	})
	return result
}

func toAABB(bbox spatial.BoundingBox) (min, max [2]float64) {
	return [2]float64{float64(bbox.Min.X), float64(bbox.Min.Y)},
		[2]float64{float64(bbox.Max.X), float64(bbox.Max.Y)}
}
