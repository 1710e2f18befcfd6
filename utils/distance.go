package utils

import (
	"fmt"
	"math"
)

const (
	EarthRadiusKM     = 6371.0
	MilesPerKilometer = 0.621371
	FeetPerMile       = 5280.0
	MetersPerKM       = 1000.0
)

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the coordinate as "lat,lng" with six decimals.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// HaversineKM returns the great-circle distance in kilometers.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := DegToRad(lat2 - lat1)
	dLon := DegToRad(lon2 - lon1)
	la1 := DegToRad(lat1)
	la2 := DegToRad(lat2)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}

// DistanceKM is HaversineKM over two coordinates.
func DistanceKM(a, b Coordinate) float64 {
	return HaversineKM(a.Lat, a.Lng, b.Lat, b.Lng)
}

// BearingDeg returns the initial compass bearing from a to b in [0, 360).
func BearingDeg(a, b Coordinate) float64 {
	la1 := DegToRad(a.Lat)
	la2 := DegToRad(b.Lat)
	dLon := DegToRad(b.Lng - a.Lng)
	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)
	return NormalizeDeg(RadToDeg(math.Atan2(y, x)))
}

// NormalizeDeg folds any angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod(-1e-15, 360) + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func KilometersToMiles(km float64) float64 { return km * MilesPerKilometer }

func MilesToKilometers(mi float64) float64 { return mi / MilesPerKilometer }

// KMHToMetersPerSecond converts km/h to m/s (GTFS-RT speed unit).
func KMHToMetersPerSecond(kmh float64) float64 { return kmh * MetersPerKM / 3600 }

// PresentableDistance formats the remaining distance for progress widgets
func PresentableDistance(remainingKM float64) string {
	const approachingKM = 0.5

	if remainingKM <= 0 {
		return "arrived"
	}
	if remainingKM < approachingKM {
		return "approaching"
	}
	return fmt.Sprintf("%.1f km", remainingKM)
}
