// Package overlay provides a non-destructive view that adds synthetic
// origin and destination nodes on top of a base graph for a single route
// query, without mutating the base graph itself.
package overlay

import (
	"arli/pkg/graph"
	"arli/pkg/spatial"
	"arli/pkg/waypoint"
)

// Base is the capability set a graph must provide to be wrapped in a
// Graph.
type Base[T any] interface {
	graph.Neighbors
	graph.DataOf[T]
	graph.Geometry
	graph.Extensible
}

// node holds an overlay-allocated node's adjacency, geometry and snap
// metadata. Only one of OutEdges/InEdges is ever populated, depending on
// whether it was created by AddOrigin or AddDestination.
type node struct {
	baseID   graph.NodeID
	outEdges []graph.NodeID
	inEdges  []graph.NodeID
	geometry []spatial.Position
	snapped  waypoint.SnappedPosition
}

// Graph wraps a base graph with a set of overlay nodes representing
// snapped route endpoints. The base graph is never mutated; overlay nodes
// live only in this wrapper and only for the lifetime of one query.
type Graph[T any, G Base[T]] struct {
	base  G
	nodes map[graph.NodeID]*node
	ext   graph.IDExtension
}

// New wraps base, ready to receive AddOrigin/AddDestination calls.
func New[T any, G Base[T]](base G) *Graph[T, G] {
	return &Graph[T, G]{
		base:  base,
		nodes: make(map[graph.NodeID]*node),
		ext:   base.NewExtension(),
	}
}

// AddOrigin creates an overlay node representing a route start snapped
// onto baseNodeID's geometry. Its outgoing edges are baseNodeID's forward
// neighbors, so the search can leave immediately from the snap point; it
// has no incoming edges, since nothing should route into a synthetic
// origin.
func (g *Graph[T, G]) AddOrigin(baseNodeID graph.NodeID, snapped waypoint.SnappedPosition) graph.NodeID {
	id := g.ext.NewNodeID()
	g.nodes[id] = &node{
		baseID:   baseNodeID,
		geometry: spatial.CutGeometryBefore(g.base.AppendGeometry(baseNodeID, nil), snapped.Snapped),
		// The stored factor is inverted (1-factor): the cost function needs
		// the fraction of the edge that remains *ahead* of the snap point,
		// since that is the share of the edge's cost the route still incurs.
		snapped: waypoint.SnappedPosition{
			Snapped:  snapped.Snapped,
			Distance: snapped.Distance,
			Factor:   1 - snapped.Factor,
		},
		outEdges: append([]graph.NodeID(nil), g.base.Neighbors(graph.Forward, baseNodeID)...),
	}
	return id
}

// AddDestination creates an overlay node representing a route end snapped
// onto baseNodeID's geometry. Its incoming edges are baseNodeID's backward
// neighbors; it has no outgoing edges.
func (g *Graph[T, G]) AddDestination(baseNodeID graph.NodeID, snapped waypoint.SnappedPosition) graph.NodeID {
	id := g.ext.NewNodeID()
	g.nodes[id] = &node{
		baseID:   baseNodeID,
		geometry: spatial.CutGeometryAfter(g.base.AppendGeometry(baseNodeID, nil), snapped.Snapped),
		snapped:  snapped,
		inEdges:  append([]graph.NodeID(nil), g.base.Neighbors(graph.Backward, baseNodeID)...),
	}
	return id
}

// FindNode maps an overlay-visible id to its underlying base node id, and,
// for an overlay node, the snap metadata that produced it.
func (g *Graph[T, G]) FindNode(id graph.NodeID) (graph.NodeID, *waypoint.SnappedPosition) {
	if g.ext.Contains(id) {
		n := g.nodes[id]
		return n.baseID, &n.snapped
	}
	return id, nil
}

// NumNodes returns the base graph's node count plus however many overlay
// nodes have been added.
func (g *Graph[T, G]) NumNodes() int { return g.base.NumNodes() + len(g.nodes) }

// Neighbors returns node id's neighbors in direction dir. Overlay nodes
// report only the edges they were constructed with (asymmetric: an origin
// has only outgoing edges, a destination only incoming); base nodes are
// never aware of overlay predecessors or successors, so the base graph's
// own adjacency is returned unchanged.
func (g *Graph[T, G]) Neighbors(dir graph.Direction, id graph.NodeID) []graph.NodeID {
	if g.ext.Contains(id) {
		n := g.nodes[id]
		if dir == graph.Forward {
			return n.outEdges
		}
		return n.inEdges
	}
	return g.base.Neighbors(dir, id)
}

// Data returns a pointer to the payload of the base node underlying id.
func (g *Graph[T, G]) Data(id graph.NodeID) *T {
	baseID, _ := g.FindNode(id)
	return g.base.Data(baseID)
}

// AppendGeometry appends id's polyline to dst: the overlay node's cut
// geometry if id is an overlay node, otherwise the base node's geometry
// unchanged.
func (g *Graph[T, G]) AppendGeometry(id graph.NodeID, dst []spatial.Position) []spatial.Position {
	if g.ext.Contains(id) {
		return append(dst, g.nodes[id].geometry...)
	}
	return g.base.AppendGeometry(id, dst)
}
