package routing

import (
	"arli/pkg/graph"
	"arli/pkg/waypoint"
)

// noSpeedLimitPenaltySeconds is charged for a segment with an unknown
// speed limit, rather than letting it look free.
const noSpeedLimitPenaltySeconds = 3600.0

// pedestrianSpeedKmH is the assumed walking speed from a snap point to
// its matched segment, used to price the "distance to the road" part of
// a partial edge traversal.
const pedestrianSpeedKmH = 4.0

// pedestrianDistancePenalty weights the straight-line snap distance when
// costing by distance rather than time.
const pedestrianDistancePenalty = 1.4

// DistanceCost is the plain distance (in meters) of traversing from.
func DistanceCost(from, to *graph.Segment) float64 {
	return float64(from.LengthMeters)
}

// TimeCost is the time (in seconds) to traverse from at its speed limit.
// Segments with no recorded speed limit are charged a flat penalty rather
// than treated as free.
func TimeCost(from, to *graph.Segment) float64 {
	if from.SpeedLimitKmH > 0 {
		return float64(from.LengthMeters) * 3.6 / float64(from.SpeedLimitKmH)
	}
	return noSpeedLimitPenaltySeconds
}

// DistancePartialCost is DistanceCost adjusted for a partially-traversed
// edge: snapped, if non-nil, scales from's length by the traversed
// fraction and adds a walking-distance penalty for the snap offset.
func DistancePartialCost(from, to *graph.Segment, snapped *waypoint.SnappedPosition) float64 {
	factor, distance := partialFactorAndDistance(snapped)
	return float64(from.LengthMeters)*factor + distance*pedestrianDistancePenalty
}

// TimePartialCost is TimeCost adjusted the same way as DistancePartialCost,
// adding the time to walk the snap offset at pedestrian speed instead of a
// flat distance penalty.
func TimePartialCost(from, to *graph.Segment, snapped *waypoint.SnappedPosition) float64 {
	factor, distance := partialFactorAndDistance(snapped)
	if from.SpeedLimitKmH > 0 {
		return float64(from.LengthMeters)*3.6*factor/float64(from.SpeedLimitKmH) + distance*3.6/pedestrianSpeedKmH
	}
	return noSpeedLimitPenaltySeconds
}

func partialFactorAndDistance(snapped *waypoint.SnappedPosition) (factor, distance float64) {
	if snapped == nil {
		return 1.0, 0.0
	}
	return float64(snapped.Factor), float64(snapped.Distance)
}
