// Package spatial provides geodesic primitives shared by the graph, overlay
// and waypoint-matching packages: positions, bounding boxes, haversine
// distance, S2 cell covering, and polyline cutting.
package spatial

import "math"

// Position is a WGS84 longitude/latitude pair in degrees, single precision
// to match the on-disk point format.
type Position struct {
	X float32 // longitude
	Y float32 // latitude
}

// BoundingBox is an axis-aligned box in Position space.
type BoundingBox struct {
	Min Position
	Max Position
}

// NewBoundingBox returns the box spanning the two corners, regardless of
// their order.
func NewBoundingBox(a, b Position) BoundingBox {
	return BoundingBox{
		Min: Position{X: float32(math.Min(float64(a.X), float64(b.X))), Y: float32(math.Min(float64(a.Y), float64(b.Y)))},
		Max: Position{X: float32(math.Max(float64(a.X), float64(b.X))), Y: float32(math.Max(float64(a.Y), float64(b.Y)))},
	}
}

// BoundingBoxOf returns the min/max box over points, or ok=false if points
// is empty.
func BoundingBoxOf(points []Position) (bbox BoundingBox, ok bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	bbox = BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < bbox.Min.X {
			bbox.Min.X = p.X
		}
		if p.Y < bbox.Min.Y {
			bbox.Min.Y = p.Y
		}
		if p.X > bbox.Max.X {
			bbox.Max.X = p.X
		}
		if p.Y > bbox.Max.Y {
			bbox.Max.Y = p.Y
		}
	}
	return bbox, true
}

// Union expands bbox to also cover other.
func (bbox BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Position{X: min32(bbox.Min.X, other.Min.X), Y: min32(bbox.Min.Y, other.Min.Y)},
		Max: Position{X: max32(bbox.Max.X, other.Max.X), Y: max32(bbox.Max.Y, other.Max.Y)},
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Envelope returns a square bounding box of half-width distMeters around
// center. The latitude offset converts distMeters at a fixed
// meters-per-degree on a sphere of earthRadiusMeters, and the longitude
// offset scales that by 1/cos(latitude); no great-circle destination point
// is computed. Mirrors arli's envelope().
func Envelope(center Position, distMeters float64) BoundingBox {
	// Degrees of latitude per meter is constant; degrees of longitude per
	// meter shrinks with cos(latitude).
	const metersPerDegreeLat = earthRadiusMeters * math.Pi / 180

	dLat := distMeters / metersPerDegreeLat
	cosLat := math.Cos(float64(center.Y) * math.Pi / 180)
	if cosLat < 1e-9 {
		cosLat = 1e-9
	}
	dLon := distMeters / (metersPerDegreeLat * cosLat)

	return BoundingBox{
		Min: Position{X: center.X - float32(dLon), Y: center.Y - float32(dLat)},
		Max: Position{X: center.X + float32(dLon), Y: center.Y + float32(dLat)},
	}
}
