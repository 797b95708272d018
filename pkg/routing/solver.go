// Package routing implements the route solvers (unidirectional and
// bidirectional label-setting Dijkstra over an overlay graph) and the cost
// functions they're parameterized with.
package routing

import (
	"arli/pkg/graph"
	"arli/pkg/overlay"
	"arli/pkg/search"
	"arli/pkg/waypoint"
)

// CostFunc prices traversing from, optionally adjusted by snap, which is
// non-nil only when from is an overlay node (a synthetic snap point).
type CostFunc func(from, to *graph.Segment, snapped *waypoint.SnappedPosition) float64

// Route is a solved path: its total cost, the node ids from origin to
// destination, and how many nodes the search settled before finding it.
type Route struct {
	Cost        float64
	IDs         []graph.NodeID
	NumResolved int
}

// weightFuncFor adapts cost into a search.WeightFunc over g, looking up
// each side's mapped base segment and the from-side's snap metadata (nil
// unless from is an overlay node).
func weightFuncFor[G overlay.Base[graph.Segment]](g *overlay.Graph[graph.Segment, G], cost CostFunc) search.WeightFunc {
	return func(dir graph.Direction, node, neighbor graph.NodeID) float64 {
		fromID, toID := node, neighbor
		if dir == graph.Backward {
			fromID, toID = neighbor, node
		}
		_, snappedFrom := g.FindNode(fromID)
		return cost(g.Data(fromID), g.Data(toID), snappedFrom)
	}
}

// RouteUnidirectional finds the cheapest path from any of origins to any of destinations
// using unidirectional label-setting Dijkstra. It returns ok=false if the
// frontier is exhausted before reaching a destination.
func RouteUnidirectional[G overlay.Base[graph.Segment]](
	g *overlay.Graph[graph.Segment, G],
	origins, destinations []graph.NodeID,
	cost CostFunc,
) (Route, bool) {
	weight := weightFuncFor(g, cost)
	fwd := search.NewSpace(g.NumNodes())
	for _, id := range origins {
		fwd.Init(id)
	}

	targets := make(map[graph.NodeID]bool, len(destinations))
	for _, id := range destinations {
		targets[id] = true
	}

	numResolved := 0
	for {
		if _, ok := fwd.Update(g, graph.Forward, weight); !ok {
			return Route{}, false
		}
		numResolved++

		if id, cost, ok := fwd.Min(); ok && targets[id] {
			return Route{
				Cost:        cost,
				IDs:         fwd.Unwind(id),
				NumResolved: numResolved,
			}, true
		}
	}
}

// RouteBidirectional finds the cheapest path with a bidirectional search:
// forward from origins, backward from destinations. Termination uses the
// textbook rule f_top+b_top >= mu (not "stop at first meeting"), so the
// returned cost is always optimal, matching the unidirectional result on
// the same instance.
func RouteBidirectional[G overlay.Base[graph.Segment]](
	g *overlay.Graph[graph.Segment, G],
	origins, destinations []graph.NodeID,
	cost CostFunc,
) (Route, bool) {
	weight := weightFuncFor(g, cost)
	fwd := search.NewSpace(g.NumNodes())
	bwd := search.NewSpace(g.NumNodes())
	for _, id := range origins {
		fwd.Init(id)
	}
	for _, id := range destinations {
		bwd.Init(id)
	}

	mu := -1.0 // negative means "no meeting found yet"
	var meetNode graph.NodeID
	haveMeet := false

	considerMeeting := func(node graph.NodeID, thisSideCost float64, other *search.Space) {
		if otherCost, ok := other.IsSettled(node); ok {
			total := thisSideCost + otherCost
			if !haveMeet || total < mu {
				mu = total
				meetNode = node
				haveMeet = true
			}
		}
	}

	numResolved := 0
	for {
		if haveMeet {
			fTop := fwd.PeekTop()
			bTop := bwd.PeekTop()
			if fTop+bTop >= mu {
				// fwd.Unwind returns [origin...meetNode]. bwd.Unwind returns
				// [destination...meetNode] (its root is the destination, since
				// that's where the backward search was seeded) -- reverse it
				// to [meetNode...destination] and drop the duplicate meetNode.
				fwdIDs := fwd.Unwind(meetNode)
				bwdIDs := bwd.Unwind(meetNode)
				reverseInPlace(bwdIDs)
				ids := make([]graph.NodeID, 0, len(fwdIDs)+len(bwdIDs)-1)
				ids = append(ids, fwdIDs...)
				ids = append(ids, bwdIDs[1:]...)
				return Route{Cost: mu, IDs: ids, NumResolved: numResolved}, true
			}
		}

		fNode, fOk := fwd.Update(g, graph.Forward, weight)
		if fOk {
			numResolved++
			if cost, ok := fwd.IsSettled(fNode); ok {
				considerMeeting(fNode, cost, bwd)
			}
			// Each neighbor just relaxed from fNode may already be settled by
			// the backward search; its tentative cost closes a path as well.
			for _, n := range g.Neighbors(graph.Forward, fNode) {
				if cost, ok := fwd.Cost(n); ok {
					considerMeeting(n, cost, bwd)
				}
			}
		}

		bNode, bOk := bwd.Update(g, graph.Backward, weight)
		if bOk {
			numResolved++
			if cost, ok := bwd.IsSettled(bNode); ok {
				considerMeeting(bNode, cost, fwd)
			}
			for _, n := range g.Neighbors(graph.Backward, bNode) {
				if cost, ok := bwd.Cost(n); ok {
					considerMeeting(n, cost, fwd)
				}
			}
		}

		if !fOk && !bOk {
			return Route{}, false
		}
	}
}

func reverseInPlace(ids []graph.NodeID) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// CalculateWeight sums each id's from-only transition cost along a solved
// path. The route's search cost already reflects the optimum found during
// the search; this is used to recompute cost under a different cost
// function (e.g. distance, after solving by time) over the same ids.
func CalculateWeight[G overlay.Base[graph.Segment]](g *overlay.Graph[graph.Segment, G], ids []graph.NodeID, cost CostFunc) float64 {
	total := 0.0
	for _, id := range ids {
		_, snapped := g.FindNode(id)
		seg := g.Data(id)
		total += cost(seg, seg, snapped)
	}
	return total
}
