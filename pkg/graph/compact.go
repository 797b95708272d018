package graph

import "sort"

// CompactGraph is an immutable directed graph in compressed sparse row
// form, with reverse edges derived at construction time. Neighbor
// iteration is a direct slice re-slice: O(1) to start, O(degree) to walk,
// never allocating.
type CompactGraph[T any] struct {
	data     []T
	outOff   []uint32 // len N+1; sentinel at N
	inOff    []uint32 // len N+1; values live in [numEdges, 2*numEdges]
	edgeRefs []uint32 // len 2*numEdges: outgoing block then incoming block
	numEdges int
}

// FromRowData builds a CompactGraph from per-node payload, per-source
// offsets into outRefs, and the concatenated outgoing target ids.
//
// Incoming adjacency is derived with a single sort-and-count pass: every
// (from, to) edge becomes a (to, from) pair, the pairs are stably sorted by
// to (so each node's incoming neighbors stay in source order), and a prefix sum over the per-to counts gives each node's incoming
// offset. This packs both directions into one edgeRefs array instead of
// two separate CSR arrays.
func FromRowData[T any](data []T, outOff []uint32, outRefs []uint32) *CompactGraph[T] {
	n := len(data)
	e := len(outRefs)

	fullOutOff := make([]uint32, n+1)
	copy(fullOutOff, outOff)
	fullOutOff[n] = uint32(e)

	edgeRefs := make([]uint32, 2*e)
	copy(edgeRefs[:e], outRefs)

	type pair struct{ to, from uint32 }
	pairs := make([]pair, 0, e)
	for from := 0; from < n; from++ {
		start, end := fullOutOff[from], fullOutOff[from+1]
		for _, to := range outRefs[start:end] {
			pairs = append(pairs, pair{to: to, from: uint32(from)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].to < pairs[j].to })

	counts := make([]uint32, n)
	for _, p := range pairs {
		counts[p.to]++
	}
	inOff := make([]uint32, n+1)
	inOff[0] = uint32(e)
	for i := 0; i < n; i++ {
		inOff[i+1] = inOff[i] + counts[i]
	}
	for i, p := range pairs {
		edgeRefs[e+i] = p.from
	}

	return &CompactGraph[T]{
		data:     data,
		outOff:   fullOutOff,
		inOff:    inOff,
		edgeRefs: edgeRefs,
		numEdges: e,
	}
}

// NumNodes returns the number of nodes.
func (g *CompactGraph[T]) NumNodes() int { return len(g.data) }

// NumEdges returns the number of directed edges.
func (g *CompactGraph[T]) NumEdges() int { return g.numEdges }

// Neighbors returns node id's neighbors in direction dir. The returned
// slice aliases edgeRefs; callers must not retain it across a mutation
// (the graph itself never mutates post-construction, so this is safe for
// the lifetime of the graph).
func (g *CompactGraph[T]) Neighbors(dir Direction, id NodeID) []NodeID {
	if dir == Forward {
		return g.edgeRefs[g.outOff[id]:g.outOff[id+1]]
	}
	return g.edgeRefs[g.inOff[id]:g.inOff[id+1]]
}

// Data returns a pointer to node id's payload.
func (g *CompactGraph[T]) Data(id NodeID) *T { return &g.data[id] }

// NewExtension returns an id allocator scoped above this graph's node ids,
// for use by a non-destructive overlay.
func (g *CompactGraph[T]) NewExtension() IDExtension { return newIDExtension(g.NumNodes()) }
