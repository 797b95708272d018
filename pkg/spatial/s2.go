package spatial

import (
	"github.com/golang/geo/s2"
)

// SpatialIndexLevel is the S2 cell level the compact spatial graph's index
// is built at. Hard-coded; the index is not persisted and is rebuilt at
// this level whenever a graph is constructed or loaded.
const SpatialIndexLevel = 13

// CellAt returns the S2 leaf cell id containing p, truncated to
// SpatialIndexLevel.
func CellAt(p Position) s2.CellID {
	ll := s2.LatLngFromDegrees(float64(p.Y), float64(p.X))
	return s2.CellIDFromLatLng(ll).Parent(SpatialIndexLevel)
}

// Cover returns the set of level-13 S2 cells intersecting bbox, using a
// region coverer configured exactly like arli's s2_cover: min_level =
// max_level = 13, max_cells = 100.
func Cover(bbox BoundingBox) []s2.CellID {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(float64(bbox.Min.Y), float64(bbox.Min.X)))
	rect = rect.AddPoint(s2.LatLngFromDegrees(float64(bbox.Max.Y), float64(bbox.Max.X)))

	coverer := &s2.RegionCoverer{
		MinLevel: SpatialIndexLevel,
		MaxLevel: SpatialIndexLevel,
		MaxCells: 100,
	}
	covering := coverer.Covering(rect)
	return []s2.CellID(covering)
}
