package gtfsrt

import "time"

// VehiclePosition is a decoded feed entity in plain Go types.
type VehiclePosition struct {
	EntityID   string
	VehicleID  string
	Label      string
	Latitude   float64
	Longitude  float64
	BearingDeg float64
	SpeedMS    float64
	OdometerM  float64
	Timestamp  time.Time
	StoppedAt  bool
}
