// Package waypoint matches a raw coordinate a client submitted against the
// nearest road geometry, producing the handful of candidate snap points the
// router tries before giving up with ErrNoMatch.
package waypoint

import (
	"fmt"
	"sort"

	"arli/pkg/graph"
	"arli/pkg/spatial"
)

// maxSnapDistanceMeters bounds how far a waypoint may be from any candidate
// edge geometry before it is rejected as a snap target.
const maxSnapDistanceMeters = 100.0

// maxCandidates is the number of snap candidates kept per waypoint, closest
// first.
const maxCandidates = 4

// SnappedPosition is a point on a node's geometry closest to some waypoint.
type SnappedPosition struct {
	Snapped  spatial.Position
	Distance float32
	Factor   float32 // fractional position along the node's full polyline, [0,1]
}

func (s SnappedPosition) String() string {
	return fmt.Sprintf("{(%g, %g), d=%g, f=%g}", s.Snapped.X, s.Snapped.Y, s.Distance, s.Factor)
}

// SnappedOnEdge pairs a SnappedPosition with the graph node it was snapped
// onto.
type SnappedOnEdge struct {
	Position SnappedPosition
	Node     graph.NodeID
}

// MatchedWaypoint is a client-submitted coordinate together with its
// closest-first list of snap candidates.
type MatchedWaypoint struct {
	Waypoint spatial.Position
	Snapped  []SnappedOnEdge
}

// GeometrySpatial is the minimal graph capability required to match
// waypoints: geometry lookup and a bounding-box node index.
type GeometrySpatial interface {
	graph.Geometry
	graph.Spatial
}

// snapToGeometry finds the closest point on polyline geom to position,
// returning ok=false if geom is empty or the closest point is maxDistance
// or more away.
func snapToGeometry(geom []spatial.Position, position spatial.Position, maxDistance float32) (SnappedPosition, bool) {
	if len(geom) == 0 {
		return SnappedPosition{}, false
	}
	if len(geom) == 1 {
		dist := float32(spatial.Haversine(position, geom[0]))
		if dist >= maxDistance {
			return SnappedPosition{}, false
		}
		return SnappedPosition{Snapped: geom[0], Distance: dist, Factor: 0}, true
	}

	segLengths := make([]float64, len(geom)-1)
	total := 0.0
	for i := 0; i < len(geom)-1; i++ {
		segLengths[i] = spatial.Haversine(geom[i], geom[i+1])
		total += segLengths[i]
	}

	bestDist := float32(-1)
	var bestPoint spatial.Position
	var bestLenBefore, bestSegLen, bestRatio float64

	lenBefore := 0.0
	for i := 0; i < len(geom)-1; i++ {
		closest, distMeters, ratio := spatial.ClosestPointOnSegment(position, geom[i], geom[i+1])
		d := float32(distMeters)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestPoint = closest
			bestLenBefore = lenBefore
			bestSegLen = segLengths[i]
			bestRatio = ratio
		}
		lenBefore += segLengths[i]
	}

	if bestDist >= maxDistance {
		return SnappedPosition{}, false
	}

	factor := 0.0
	if total > 0 {
		factor = (bestLenBefore + bestRatio*bestSegLen) / total
	}

	return SnappedPosition{Snapped: bestPoint, Distance: bestDist, Factor: float32(factor)}, true
}

// Match finds snap candidates for waypoint against every node whose
// geometry falls within 100m, sorted closest first and truncated to the
// top maxCandidates.
func Match[G GeometrySpatial](g G, waypoint spatial.Position) MatchedWaypoint {
	nearby := g.FindNodes(spatial.Envelope(waypoint, maxSnapDistanceMeters))

	seen := make(map[graph.NodeID]bool, len(nearby))
	var candidates []SnappedOnEdge
	for _, id := range nearby {
		if seen[id] {
			continue
		}
		seen[id] = true

		geom := g.AppendGeometry(id, nil)
		snapped, ok := snapToGeometry(geom, waypoint, maxSnapDistanceMeters)
		if !ok {
			continue
		}
		candidates = append(candidates, SnappedOnEdge{Position: snapped, Node: id})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Position.Distance < candidates[j].Position.Distance
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return MatchedWaypoint{Waypoint: waypoint, Snapped: candidates}
}
