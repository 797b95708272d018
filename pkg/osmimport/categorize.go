// Package osmimport builds an edge-based road graph from an OSM PBF
// extract: tags are categorized into per-direction accessibility and a
// speed limit, ways are split into segments at intersection nodes, and the
// result is assembled into a graph.CompactSpatialGraph[graph.Segment].
package osmimport

import (
	"regexp"
	"strconv"
)

// Per-mode accessibility levels. Higher values describe better-quality
// access for car/bike; car and bike only ever compare against "forbidden"
// here, so the exact ranking beyond that is unused, but kept to mirror the
// tag vocabulary below (residential < tertiary < secondary < primary <
// trunk < motorway).
const (
	unknown = -1

	footForbidden = 0
	footAllowed   = 1

	carForbidden    = 0
	carResidential  = 1
	carTertiary     = 2
	carSecondary    = 3
	carPrimary      = 4
	carTrunk        = 5
	carMotorway     = 6

	bikeForbidden = 0
	bikeAllowed   = 2
	bikeLane      = 3
	bikeBusway    = 4
	bikeTrack     = 5
)

// EdgeProperties is the per-direction accessibility and speed of a way,
// accumulated tag by tag via Update and resolved to concrete values with
// Normalize.
type EdgeProperties struct {
	Foot          int8
	CarForward    int8
	CarBackward   int8
	BikeForward   int8
	BikeBackward  int8
	SpeedLimitKmH uint8
}

// DefaultEdgeProperties returns properties with every accessibility field
// unknown (pending Update/Normalize) and a fallback 50 km/h speed limit.
func DefaultEdgeProperties() EdgeProperties {
	return EdgeProperties{
		Foot:          unknown,
		CarForward:    unknown,
		CarBackward:   unknown,
		BikeForward:   unknown,
		BikeBackward:  unknown,
		SpeedLimitKmH: 50,
	}
}

// Normalize fills every still-unknown field: backward direction defaults to
// whatever forward resolved to (i.e. bidirectional unless a oneway tag said
// otherwise), and any remaining unknown is forbidden.
func (p *EdgeProperties) Normalize() {
	if p.CarBackward == unknown {
		p.CarBackward = p.CarForward
	}
	if p.BikeBackward == unknown {
		p.BikeBackward = p.BikeForward
	}
	if p.CarForward == unknown {
		p.CarForward = carForbidden
	}
	if p.BikeForward == unknown {
		p.BikeForward = bikeForbidden
	}
	if p.CarBackward == unknown {
		p.CarBackward = carForbidden
	}
	if p.BikeBackward == unknown {
		p.BikeBackward = bikeForbidden
	}
	if p.Foot == unknown {
		p.Foot = footForbidden
	}
}

// Accessible reports whether at least one mode can use the way in at least
// one direction.
func (p EdgeProperties) Accessible() bool {
	return p.BikeForward != bikeForbidden ||
		p.BikeBackward != bikeForbidden ||
		p.CarForward != carForbidden ||
		p.CarBackward != carForbidden ||
		p.Foot != footForbidden
}

var maxSpeedRE = regexp.MustCompile(`^(\d+)\s*(.*)$`)

// parseMaxSpeed parses an OSM maxspeed value ("50", "30 mph"), converting
// mph to km/h. Returns ok=false for anything it doesn't recognize (e.g.
// "none", "signals").
func parseMaxSpeed(val string) (kmh uint8, ok bool) {
	m := maxSpeedRE.FindStringSubmatch(val)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(m[1], 10, 8)
	if err != nil {
		return 0, false
	}
	if m[2] == "mph" {
		return uint8(float64(n) * 1.6), true
	}
	return uint8(n), true
}

// Update folds one OSM tag (key, val) into p.
func (p *EdgeProperties) Update(key, val string) {
	switch key {
	case "highway":
		switch val {
		case "cycleway", "path", "footway", "steps", "pedestrian":
			p.BikeForward = bikeTrack
			p.Foot = footAllowed
		case "primary", "primary_link":
			p.CarForward = carPrimary
			p.Foot = footAllowed
			p.BikeForward = bikeAllowed
		case "secondary":
			p.CarForward = carSecondary
			p.Foot = footAllowed
			p.BikeForward = bikeAllowed
		case "tertiary":
			p.CarForward = carTertiary
			p.Foot = footAllowed
			p.BikeForward = bikeAllowed
		case "unclassified", "residential", "living_street", "road", "service", "track":
			p.CarForward = carResidential
			p.Foot = footAllowed
			p.BikeForward = bikeAllowed
		case "motorway", "motorway_link":
			p.CarForward = carMotorway
			p.Foot = footForbidden
			p.BikeForward = bikeForbidden
		case "trunk", "trunk_link":
			p.CarForward = carTrunk
			p.Foot = footForbidden
			p.BikeForward = bikeForbidden
		}

	case "pedestrian", "foot":
		if val == "no" {
			p.Foot = footForbidden
		} else {
			p.Foot = footAllowed
		}

	case "cycleway":
		switch val {
		case "track":
			p.BikeForward = bikeTrack
		case "opposite_track":
			p.BikeBackward = bikeTrack
		case "opposite":
			p.BikeBackward = bikeAllowed
		case "share_busway":
			p.BikeForward = bikeBusway
		case "lane_left", "opposite_lane":
			p.BikeBackward = bikeLane
		default:
			p.BikeForward = bikeLane
		}

	case "bicycle":
		if val == "no" || val == "false" {
			p.BikeForward = bikeForbidden
		} else {
			p.BikeForward = bikeAllowed
		}

	case "busway":
		switch val {
		case "opposite_lane", "opposite_track":
			p.BikeBackward = bikeBusway
		default:
			p.BikeForward = bikeBusway
		}

	case "oneway":
		switch val {
		case "yes", "true", "1":
			p.CarBackward = carForbidden
			if p.BikeBackward == unknown {
				p.BikeBackward = bikeForbidden
			}
		}

	case "junction":
		if val == "roundabout" {
			p.CarBackward = carForbidden
			if p.BikeBackward == unknown {
				p.BikeBackward = bikeForbidden
			}
		}

	case "maxspeed":
		if kmh, ok := parseMaxSpeed(val); ok {
			p.SpeedLimitKmH = kmh
		}
	}
}
