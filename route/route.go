// Package route fabricates the path a simulated truck drives along.
package route

import (
	"math/rand/v2"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

const (
	// DefaultPointCount is the number of legs in a generated route.
	DefaultPointCount = 10
	// DefaultJitterDeg is the full span of the random offset added to interior points.
	DefaultJitterDeg = 0.01
	// RandomDestinationSpanDeg is the full span of the offset used when no destination is given.
	RandomDestinationSpanDeg = 1.0
)

// Route is an ordered, immutable sequence of coordinates from origin to destination.
type Route struct {
	points []utils.Coordinate
}

// New copies points into a Route.
func New(points []utils.Coordinate) Route {
	cp := make([]utils.Coordinate, len(points))
	copy(cp, points)
	return Route{points: cp}
}

// Generate builds a route of pointCount legs (pointCount+1 coordinates). Interior
// point i sits at fraction i/pointCount of the straight line plus uniform jitter
// in [-jitterDeg/2, jitterDeg/2) on each axis. pointCount below 1 is treated as 1.
func Generate(origin, destination utils.Coordinate, pointCount int, jitterDeg float64, rng *rand.Rand) Route {
	if pointCount < 1 {
		pointCount = 1
	}
	points := make([]utils.Coordinate, 0, pointCount+1)
	points = append(points, origin)
	dLat := destination.Lat - origin.Lat
	dLng := destination.Lng - origin.Lng
	for i := 1; i < pointCount; i++ {
		frac := float64(i) / float64(pointCount)
		points = append(points, utils.Coordinate{
			Lat: origin.Lat + dLat*frac + jitter(rng, jitterDeg),
			Lng: origin.Lng + dLng*frac + jitter(rng, jitterDeg),
		})
	}
	points = append(points, destination)
	return Route{points: points}
}

// RandomDestination picks a point up to half of RandomDestinationSpanDeg away
// from origin on each axis.
func RandomDestination(origin utils.Coordinate, rng *rand.Rand) utils.Coordinate {
	return utils.Coordinate{
		Lat: origin.Lat + jitter(rng, RandomDestinationSpanDeg),
		Lng: origin.Lng + jitter(rng, RandomDestinationSpanDeg),
	}
}

func jitter(rng *rand.Rand, span float64) float64 {
	if span == 0 {
		return 0
	}
	return (rng.Float64() - 0.5) * span
}

// Len returns the number of coordinates.
func (r Route) Len() int { return len(r.points) }

// At returns the i-th coordinate. It panics when i is out of range.
func (r Route) At(i int) utils.Coordinate { return r.points[i] }

// Points returns a copy of the coordinates.
func (r Route) Points() []utils.Coordinate {
	out := make([]utils.Coordinate, len(r.points))
	copy(out, r.points)
	return out
}

// Origin returns the first coordinate, or the zero value for an empty route.
func (r Route) Origin() utils.Coordinate {
	if len(r.points) == 0 {
		return utils.Coordinate{}
	}
	return r.points[0]
}

// Destination returns the last coordinate, or the zero value for an empty route.
func (r Route) Destination() utils.Coordinate {
	if len(r.points) == 0 {
		return utils.Coordinate{}
	}
	return r.points[len(r.points)-1]
}

// LengthKM sums the great-circle length of every leg.
func (r Route) LengthKM() float64 {
	total := 0.0
	for i := 1; i < len(r.points); i++ {
		total += utils.DistanceKM(r.points[i-1], r.points[i])
	}
	return total
}
