package api

import (
	"fmt"
	"strconv"
	"strings"

	"arli/pkg/routing"
)

// parseWaypoints parses an OSRM-style "lon,lat;lon,lat" path parameter.
// Exactly two waypoints are required; anything else is a request error.
func parseWaypoints(s string) ([2]routing.LatLng, error) {
	var result [2]routing.LatLng

	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return result, fmt.Errorf("expected exactly 2 waypoints, got %d", len(parts))
	}

	for i, part := range parts {
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return result, fmt.Errorf("waypoint %q must be lon,lat", part)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			return result, fmt.Errorf("waypoint %q: invalid longitude: %w", part, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return result, fmt.Errorf("waypoint %q: invalid latitude: %w", part, err)
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return result, fmt.Errorf("waypoint %q: coordinates out of range", part)
		}
		result[i] = routing.LatLng{Lat: lat, Lng: lon}
	}
	return result, nil
}
