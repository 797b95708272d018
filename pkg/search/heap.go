package search

import "arli/pkg/graph"

// pqItem is a priority queue entry: a node and the tentative cost it was
// pushed with. A node may appear more than once (lazy decrease-key);
// Update recognizes and skips stale entries by comparing dist against the
// label's current cost.
type pqItem struct {
	node graph.NodeID
	dist float64
}

// minHeap is a concrete-typed binary min-heap, avoiding the interface
// boxing overhead of container/heap.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) len() int { return len(h.items) }

func (h *minHeap) push(node graph.NodeID, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) peek() pqItem { return h.items[0] }

func (h *minHeap) reset() { h.items = h.items[:0] }

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
