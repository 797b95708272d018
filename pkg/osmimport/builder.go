package osmimport

import (
	"log"

	"github.com/paulmach/osm"

	"arli/pkg/graph"
	"arli/pkg/spatial"
)

// Build assembles OSM edges into an edge-based road graph: one graph node
// per directed segment (not per OSM node), connected via shared
// intersection OSM nodes rather than a direct edge-to-edge relation. Two
// segments emitted by the same way never connect directly; segment S's
// successors are every segment whose source OSM node equals S's target.
//
// After assembly, segments outside the largest weakly-connected component
// are discarded (see §4.F's import-time robustness note) so disconnected
// slivers fail visibly at import time rather than silently at query time.
func Build(edges []Edge) *graph.CompactSpatialGraph[graph.Segment] {
	var segments []graph.Segment
	var targetNodes []osm.NodeID
	outSegments := make(map[osm.NodeID][]uint32)

	points := []spatial.Position{{}} // index 0 reserved as the reverse-range sentinel
	var geomStart, geomEnd []uint32

	for _, e := range edges {
		length := float32(e.Length())

		if e.Properties.CarForward != carForbidden {
			start := uint32(len(points))
			points = append(points, e.Geometry...)
			end := uint32(len(points))

			geomStart = append(geomStart, start)
			geomEnd = append(geomEnd, end)

			id := uint32(len(segments))
			segments = append(segments, graph.Segment{LengthMeters: length, SpeedLimitKmH: e.Properties.SpeedLimitKmH})
			outSegments[e.Source] = append(outSegments[e.Source], id)
			targetNodes = append(targetNodes, e.Target)
		}

		if e.Properties.CarBackward != carForbidden {
			// Backward normalizes from forward unless a oneway/roundabout tag
			// explicitly forced it to FORBIDDEN, so forward's geometry (just
			// appended above, if accessible at all) is always already in
			// points here. Reuse it in reverse: (lastPointIdx, firstPointIdxBefore].
			end := uint32(len(points)) - 1
			start := end - uint32(len(e.Geometry))

			geomStart = append(geomStart, end)
			geomEnd = append(geomEnd, start)

			id := uint32(len(segments))
			segments = append(segments, graph.Segment{LengthMeters: length, SpeedLimitKmH: e.Properties.SpeedLimitKmH})
			outSegments[e.Target] = append(outSegments[e.Target], id)
			targetNodes = append(targetNodes, e.Source)
		}
	}

	outOff := make([]uint32, len(targetNodes))
	var edgeRefs []uint32
	for i, target := range targetNodes {
		outOff[i] = uint32(len(edgeRefs))
		edgeRefs = append(edgeRefs, outSegments[target]...)
	}

	base := graph.FromRowData(segments, outOff, edgeRefs)
	log.Printf("osmimport: built %d segments before component filtering", base.NumNodes())

	component := graph.LargestComponent(base)
	log.Printf("osmimport: largest component: %d segments (%.1f%%)", len(component), float64(len(component))/float64(base.NumNodes())*100)

	filteredData, filteredOutOff, filteredOutRefs, filteredGeomStart, filteredGeomEnd :=
		filterToComponent(segments, outOff, edgeRefs, geomStart, geomEnd, component)

	filteredBase := graph.FromRowData(filteredData, filteredOutOff, filteredOutRefs)
	g := graph.NewCompactSpatialGraph(filteredBase, points, filteredGeomStart, filteredGeomEnd)
	log.Printf("osmimport: final graph: %d segments, %d edges", g.NumNodes(), g.NumEdges())
	return g
}

// filterToComponent keeps only the segments (and their out-edges) in
// keep, remapping old segment ids to new contiguous ones. points itself is
// never filtered (geomStart/geomEnd of kept segments still index into it;
// dropped segments simply leave some points unreferenced).
func filterToComponent(
	data []graph.Segment,
	outOff, outRefs []uint32,
	geomStart, geomEnd []uint32,
	keep []graph.NodeID,
) (newData []graph.Segment, newOutOff, newOutRefs, newGeomStart, newGeomEnd []uint32) {
	keepSet := make(map[graph.NodeID]bool, len(keep))
	remap := make(map[graph.NodeID]graph.NodeID, len(keep))
	for i, id := range keep {
		keepSet[id] = true
		remap[id] = graph.NodeID(i)
	}

	newData = make([]graph.Segment, 0, len(keep))
	newGeomStart = make([]uint32, 0, len(keep))
	newGeomEnd = make([]uint32, 0, len(keep))

	for _, oldID := range keep {
		newData = append(newData, data[oldID])
		newGeomStart = append(newGeomStart, geomStart[oldID])
		newGeomEnd = append(newGeomEnd, geomEnd[oldID])

		start := outOff[oldID]
		var end uint32
		if int(oldID)+1 < len(outOff) {
			end = outOff[oldID+1]
		} else {
			end = uint32(len(outRefs))
		}
		newOutOff = append(newOutOff, uint32(len(newOutRefs)))
		for _, ref := range outRefs[start:end] {
			if keepSet[ref] {
				newOutRefs = append(newOutRefs, remap[ref])
			}
		}
	}
	return newData, newOutOff, newOutRefs, newGeomStart, newGeomEnd
}
