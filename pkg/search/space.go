// Package search implements the label-setting Dijkstra core: a priority
// queue driven search space that is direction-parametric (the same state
// machine drives forward and backward searches) and tolerates a lazy
// decrease-key discipline -- stale priority queue entries are never
// deleted, only recognized and skipped on pop.
package search

import (
	"math"

	"arli/pkg/graph"
)

// WeightFunc computes the edge weight from node to neighbor when searching
// direction dir. Implementations must return non-negative weights.
type WeightFunc func(dir graph.Direction, node, neighbor graph.NodeID) float64

// label is one node's search state: tentative cost, parent pointer, and
// whether it has been settled (popped and finalized).
type label struct {
	cost    float64
	parent  graph.NodeID
	settled bool
	has     bool
}

// Space is a single-direction label-setting Dijkstra search space over a
// graph with n nodes. It is cheap to Reset and reuse across queries:
// Reset only touches the nodes a prior search actually visited.
type Space struct {
	labels  []label
	touched []graph.NodeID
	pq      minHeap
}

// NewSpace returns a search space sized for a graph of n nodes.
func NewSpace(n int) *Space {
	return &Space{
		labels:  make([]label, n),
		touched: make([]graph.NodeID, 0, 256),
	}
}

// Reset clears only the labels touched by the previous search, and empties
// the priority queue.
func (s *Space) Reset() {
	for _, id := range s.touched {
		s.labels[id] = label{}
	}
	s.touched = s.touched[:0]
	s.pq.reset()
}

// Init seeds node with cost 0 and itself as parent (the self-loop marking
// an initial node, used by Unwind to detect the start of the path).
func (s *Space) Init(node graph.NodeID) {
	s.InitWithCost(node, 0)
}

// InitWithCost seeds node with an initial cost c (used for overlay origins
// whose first edge is already partially consumed) and itself as parent.
func (s *Space) InitWithCost(node graph.NodeID, c float64) {
	s.relax(node, node, c)
}

// Relax offers a candidate (newParent, newCost) path to node. If node has
// no label yet, it is inserted and pushed. If node has an unsettled label
// and newCost improves on it, the label is overwritten and a fresh pq
// entry is pushed -- the stale entry is left in the queue and skipped
// later on pop. A settled label is never changed: relaxing it with a lower
// cost panics (a negative weight), and any other relaxation of it is ignored.
func (s *Space) Relax(node, newParent graph.NodeID, newCost float64) {
	s.relax(node, newParent, newCost)
}

func (s *Space) relax(node, newParent graph.NodeID, newCost float64) {
	l := &s.labels[node]
	if !l.has {
		s.touched = append(s.touched, node)
		*l = label{cost: newCost, parent: newParent, settled: false, has: true}
		s.pq.push(node, newCost)
		return
	}
	if l.settled {
		// A relaxation attempt that would improve on an already-settled
		// label means a negative edge weight slipped through -- settled
		// costs in Dijkstra are final by construction. Relaxations that
		// merely fail to improve a settled label are routine (multiple
		// paths reaching an already-finalized node) and are ignored.
		if newCost < l.cost {
			panic("search: relax would improve a settled label")
		}
		return
	}
	if newCost < l.cost {
		l.cost = newCost
		l.parent = newParent
		s.pq.push(node, newCost)
	}
}

// Update pops entries until it finds one that is not stale (a popped cost
// that no longer matches the label's current cost, or a label that is
// already settled are both stale and skipped), settles that node, and
// relaxes its neighbors in direction dir using weight. It returns the
// settled node and true, or false if the frontier is exhausted.
func (s *Space) Update(g graph.Neighbors, dir graph.Direction, weight WeightFunc) (graph.NodeID, bool) {
	for s.pq.len() > 0 {
		item := s.pq.pop()
		l := &s.labels[item.node]
		if l.settled || item.dist > l.cost {
			continue
		}
		l.settled = true

		for _, neighbor := range g.Neighbors(dir, item.node) {
			w := weight(dir, item.node, neighbor)
			s.relax(neighbor, item.node, l.cost+w)
		}
		return item.node, true
	}
	return 0, false
}

// Min peeks the pq head without popping, reporting the tentative minimum
// among unsettled (and possibly stale) entries. ok is false if the queue
// is empty.
func (s *Space) Min() (id graph.NodeID, cost float64, ok bool) {
	if s.pq.len() == 0 {
		return 0, 0, false
	}
	top := s.pq.peek()
	return top.node, top.dist, true
}

// IsSettled returns node's settled cost, if any.
func (s *Space) IsSettled(node graph.NodeID) (float64, bool) {
	l := &s.labels[node]
	if l.has && l.settled {
		return l.cost, true
	}
	return 0, false
}

// Cost returns node's current tentative (possibly unsettled) cost, if it
// has been touched at all.
func (s *Space) Cost(node graph.NodeID) (float64, bool) {
	l := &s.labels[node]
	if l.has {
		return l.cost, true
	}
	return 0, false
}

// Unwind walks parent pointers from node back to its self-loop root and
// returns the path from root to node (start-to-end order).
func (s *Space) Unwind(node graph.NodeID) []graph.NodeID {
	var reversed []graph.NodeID
	for {
		reversed = append(reversed, node)
		l := &s.labels[node]
		if l.parent == node {
			break
		}
		node = l.parent
	}
	path := make([]graph.NodeID, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

// PeekTop reports the current pq head's cost, or +Inf if empty. Used by
// the bidirectional termination rule, which needs f_top+b_top even when a
// side has no more unsettled work.
func (s *Space) PeekTop() float64 {
	if s.pq.len() == 0 {
		return math.Inf(1)
	}
	return s.pq.peek().dist
}
