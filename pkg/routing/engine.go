package routing

import (
	"context"
	"errors"

	"arli/pkg/graph"
	"arli/pkg/overlay"
	"arli/pkg/spatial"
	"arli/pkg/waypoint"
)

// ErrNoRoute is returned when no path exists between the two snapped
// waypoints.
var ErrNoRoute = errors.New("no route found")

// ErrNoMatch is returned when a waypoint does not fall within 100m of any
// road geometry.
var ErrNoMatch = errors.New("waypoint did not match any road")

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

func (l LatLng) toPosition() spatial.Position {
	return spatial.Position{X: float32(l.Lng), Y: float32(l.Lat)}
}

func fromPosition(p spatial.Position) LatLng {
	return LatLng{Lat: float64(p.Y), Lng: float64(p.X)}
}

// SnapInfo describes where a requested waypoint ended up after snapping.
type SnapInfo struct {
	Location       LatLng
	DistanceMeters float64
}

// RouteResult is the solved route between two waypoints.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []LatLng
	StartSnap       SnapInfo
	EndSnap         SnapInfo
}

// Router computes a route between two points.
type Router interface {
	Route(ctx context.Context, start, end LatLng) (*RouteResult, error)
}

// spatialGraph is the concrete graph capability Engine needs: the union of
// overlay.Base[graph.Segment] (to build a per-query overlay) and
// waypoint.GeometrySpatial (to snap raw coordinates onto it).
type spatialGraph interface {
	overlay.Base[graph.Segment]
	waypoint.GeometrySpatial
}

// Engine implements Router over an immutable road graph: each call snaps
// both endpoints, builds a fresh overlay and search space, and solves by
// time (with a distance recomputation pass over the winning path).
type Engine struct {
	g spatialGraph
}

// NewEngine returns an Engine backed by g.
func NewEngine(g *graph.CompactSpatialGraph[graph.Segment]) *Engine {
	return &Engine{g: g}
}

// Route snaps start and end onto the graph, solves the cheapest path by
// travel time, and recomputes the same path's distance.
//
// ctx cancellation is checked only before the search starts: once a
// bidirectional search begins it runs to completion or frontier exhaustion,
// matching the core's single-threaded, non-suspending design.
func (e *Engine) Route(ctx context.Context, start, end LatLng) (*RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startMatch := waypoint.Match(e.g, start.toPosition())
	if len(startMatch.Snapped) == 0 {
		return nil, ErrNoMatch
	}
	endMatch := waypoint.Match(e.g, end.toPosition())
	if len(endMatch.Snapped) == 0 {
		return nil, ErrNoMatch
	}

	ov := overlay.New[graph.Segment](e.g)

	origins := make([]graph.NodeID, len(startMatch.Snapped))
	for i, c := range startMatch.Snapped {
		origins[i] = ov.AddOrigin(c.Node, c.Position)
	}
	destinations := make([]graph.NodeID, len(endMatch.Snapped))
	for i, c := range endMatch.Snapped {
		destinations[i] = ov.AddDestination(c.Node, c.Position)
	}

	route, ok := RouteBidirectional(ov, origins, destinations, TimePartialCost)
	if !ok {
		return nil, ErrNoRoute
	}
	distance := CalculateWeight(ov, route.IDs, DistancePartialCost)

	geometry := collectGeometry(ov, route.IDs)

	closestStart := startMatch.Snapped[0].Position
	closestEnd := endMatch.Snapped[0].Position
	return &RouteResult{
		DistanceMeters:  distance,
		DurationSeconds: route.Cost,
		Geometry:        geometry,
		StartSnap:       SnapInfo{Location: fromPosition(closestStart.Snapped), DistanceMeters: float64(closestStart.Distance)},
		EndSnap:         SnapInfo{Location: fromPosition(closestEnd.Snapped), DistanceMeters: float64(closestEnd.Distance)},
	}, nil
}

// collectGeometry concatenates each id's polyline in order, dropping
// adjacent duplicate points at segment boundaries.
func collectGeometry[G overlay.Base[graph.Segment]](g *overlay.Graph[graph.Segment, G], ids []graph.NodeID) []LatLng {
	var points []spatial.Position
	for _, id := range ids {
		points = g.AppendGeometry(id, points)
	}

	result := make([]LatLng, 0, len(points))
	for i, p := range points {
		if i > 0 && p == points[i-1] {
			continue
		}
		result = append(result, fromPosition(p))
	}
	return result
}
