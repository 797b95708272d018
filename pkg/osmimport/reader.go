package osmimport

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"arli/pkg/spatial"
)

// BBox is a geographic filter: only ways whose nodes are all inside the box
// are kept. A zero BBox disables filtering.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero reports whether b is the unset filter.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

func (b BBox) contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Options configures ReadEdges.
type Options struct {
	BBox BBox
}

// Edge is a topological way segment: two intersection-node endpoints and
// the polyline geometry between them, carrying the properties of the way
// it was split from.
type Edge struct {
	Source, Target osm.NodeID
	Geometry       []spatial.Position
	Properties     EdgeProperties
}

// Length is the edge's haversine polyline length in meters.
func (e Edge) Length() float64 {
	return spatial.PolylineLength(e.Geometry)
}

type wayRecord struct {
	nodes      []osm.NodeID
	properties EdgeProperties
}

// ReadEdges scans an OSM PBF extract in two passes — ways first (to learn
// which nodes are referenced and how many times), then nodes (to capture
// coordinates only for those referenced) — and returns the ways split into
// edges at intersection nodes. rs is read twice, so it must support Seek.
func ReadEdges(ctx context.Context, rs io.ReadSeeker, opts Options) ([]Edge, error) {
	useBBox := !opts.BBox.IsZero()

	uses := make(map[osm.NodeID]int)
	var ways []wayRecord

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}

		props := DefaultEdgeProperties()
		for _, tag := range w.Tags {
			props.Update(tag.Key, tag.Value)
		}
		props.Normalize()
		if !props.Accessible() {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			uses[wn.ID]++
		}
		ways = append(ways, wayRecord{nodes: nodeIDs, properties: props})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()
	log.Printf("osmimport: pass 1 complete: %d accessible ways, %d referenced nodes", len(ways), len(uses))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	coords := make(map[osm.NodeID]spatial.Position, len(uses))
	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := uses[n.ID]; !needed {
			continue
		}
		coords[n.ID] = spatial.Position{X: float32(n.Lon), Y: float32(n.Lat)}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()
	log.Printf("osmimport: pass 2 complete: %d node coordinates collected", len(coords))

	var edges []Edge
	var skipped int
	for _, w := range ways {
		edges = append(edges, splitWay(w, uses, coords, opts.BBox, useBBox, &skipped)...)
	}
	if skipped > 0 {
		log.Printf("osmimport: skipped %d ways with missing node coordinates or out-of-bbox nodes", skipped)
	}
	log.Printf("osmimport: split into %d edges", len(edges))

	return edges, nil
}

// splitWay walks w's node list, closing an edge whenever it hits an
// intersection (a node used by more than one way) or the final node.
func splitWay(w wayRecord, uses map[osm.NodeID]int, coords map[osm.NodeID]spatial.Position, bbox BBox, useBBox bool, skipped *int) []Edge {
	var edges []Edge
	var source osm.NodeID
	var points []spatial.Position

	for i, nodeID := range w.nodes {
		p, ok := coords[nodeID]
		if !ok {
			*skipped++
			return nil
		}
		if useBBox && !bbox.contains(float64(p.Y), float64(p.X)) {
			*skipped++
			return nil
		}

		if i == 0 {
			source = nodeID
			points = []spatial.Position{p}
			continue
		}
		points = append(points, p)

		if uses[nodeID] > 1 || i == len(w.nodes)-1 {
			geom := make([]spatial.Position, len(points))
			copy(geom, points)
			edges = append(edges, Edge{
				Source:     source,
				Target:     nodeID,
				Geometry:   geom,
				Properties: w.properties,
			})
			source = nodeID
			points = []spatial.Position{p}
		}
	}
	return edges
}
