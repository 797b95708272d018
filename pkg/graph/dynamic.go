package graph

import "arli/pkg/spatial"

// DynamicGraph is a mutable directed graph meant for small inputs and
// tests: adjacency is built incrementally with AddNode/AddEdge, unlike
// CompactGraph's one-shot CSR construction. Each node tracks its own
// outgoing and incoming neighbor lists directly, so mutation is cheap but
// memory layout is not compact.
type DynamicGraph[T any] struct {
	data []T
	out  [][]NodeID
	in   [][]NodeID
	geom [][]spatial.Position // nil entries are simply empty geometry
}

// NewDynamicGraph returns an empty graph.
func NewDynamicGraph[T any]() *DynamicGraph[T] {
	return &DynamicGraph[T]{}
}

// AddNode appends a node carrying data and returns its id.
func (g *DynamicGraph[T]) AddNode(data T) NodeID {
	id := NodeID(len(g.data))
	g.data = append(g.data, data)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.geom = append(g.geom, nil)
	return id
}

// SetGeometry records node id's polyline. Unset nodes have empty geometry.
func (g *DynamicGraph[T]) SetGeometry(id NodeID, points []spatial.Position) {
	g.geom[id] = points
}

// AddEdge adds a directed edge from -> to. Parallel edges are permitted.
func (g *DynamicGraph[T]) AddEdge(from, to NodeID) {
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
}

// NumNodes returns the number of nodes.
func (g *DynamicGraph[T]) NumNodes() int { return len(g.data) }

// NumEdges returns the number of directed edges.
func (g *DynamicGraph[T]) NumEdges() int {
	n := 0
	for _, out := range g.out {
		n += len(out)
	}
	return n
}

// Neighbors returns node id's neighbors in direction dir.
func (g *DynamicGraph[T]) Neighbors(dir Direction, id NodeID) []NodeID {
	if dir == Forward {
		return g.out[id]
	}
	return g.in[id]
}

// Data returns a pointer to node id's payload.
func (g *DynamicGraph[T]) Data(id NodeID) *T { return &g.data[id] }

// AppendGeometry appends node id's polyline (empty if never set) to dst.
func (g *DynamicGraph[T]) AppendGeometry(id NodeID, dst []spatial.Position) []spatial.Position {
	return append(dst, g.geom[id]...)
}

// NewExtension returns an id allocator scoped above this graph's node ids,
// for use by a non-destructive overlay.
func (g *DynamicGraph[T]) NewExtension() IDExtension { return newIDExtension(g.NumNodes()) }
