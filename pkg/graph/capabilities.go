// Package graph implements the edge-based graph model: the immutable
// compact (CSR) representation used in production, its spatial-indexed
// variant, and a mutable dynamic representation used for tests and small
// inputs.
//
// A graph's capabilities — having neighbors in a direction, holding node
// payload, exposing geometry, supporting spatial lookup, handing out new
// ids — are expressed as small interfaces rather than one monolithic graph
// interface. Callers (search, overlay, waypoint matching) depend only on
// the capability they need.
package graph

import "arli/pkg/spatial"

// NodeID identifies a node in the edge-based graph: a directed road
// segment, not an OSM node. Dense and zero-based.
type NodeID = uint32

// Direction selects which adjacency a graph exposes: the segments a node
// leads to, or the segments that lead to it.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Neighbors exposes per-node adjacency in both directions. Implementations
// must return the underlying slice directly — no allocation per call.
type Neighbors interface {
	Neighbors(dir Direction, id NodeID) []NodeID
	NumNodes() int
}

// DataOf exposes the node payload of type T.
type DataOf[T any] interface {
	Data(id NodeID) *T
}

// Geometry exposes a node's polyline.
type Geometry interface {
	// AppendGeometry appends the positions of node id's polyline to dst and
	// returns the extended slice, avoiding an allocation per call when dst
	// has spare capacity.
	AppendGeometry(id NodeID, dst []spatial.Position) []spatial.Position
}

// Spatial exposes a bounding-box lookup over node geometry.
type Spatial interface {
	FindNodes(bbox spatial.BoundingBox) []NodeID
}

// IDExtension hands out fresh node ids strictly above a base graph's
// maximum id, for use by non-destructive overlays.
type IDExtension interface {
	// NewNodeID allocates and returns the next extension id.
	NewNodeID() NodeID
	// Contains reports whether id falls within this extension's range.
	Contains(id NodeID) bool
}

// Extensible graphs can produce a fresh IDExtension scoped to their current
// size.
type Extensible interface {
	NewExtension() IDExtension
}

// MaxID returns the largest valid node id, or false if the graph is empty.
func MaxID(g Neighbors) (NodeID, bool) {
	n := g.NumNodes()
	if n == 0 {
		return 0, false
	}
	return NodeID(n - 1), true
}

// idExtension is a simple contiguous-range allocator: it hands out
// sequential ids starting at min, which is set to the base graph's node
// count at creation time so overlay ids never collide with base ids.
type idExtension struct {
	next NodeID
	min  NodeID
}

func newIDExtension(numBaseNodes int) *idExtension {
	return &idExtension{next: NodeID(numBaseNodes), min: NodeID(numBaseNodes)}
}

// NewNodeID allocates the next id in the range.
func (e *idExtension) NewNodeID() NodeID {
	id := e.next
	e.next++
	return id
}

// Contains reports whether id was allocated by this extension: min <= id < next.
func (e *idExtension) Contains(id NodeID) bool { return id >= e.min && id < e.next }
