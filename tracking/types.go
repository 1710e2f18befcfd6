package tracking

import (
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/route"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

// Status is the lifecycle state of a tracked truck.
type Status string

const (
	StatusTracking Status = "tracking"
	StatusArrived  Status = "arrived"
)

// Record is the tracking state of one truck. Values handed out by the Engine are
// copies; re-fetch with GetTrackingInfo instead of caching them across a
// stop/start cycle.
type Record struct {
	TruckID          string           `json:"truckId"`
	Position         utils.Coordinate `json:"position"`
	SpeedKMH         float64          `json:"speedKmh"`
	HeadingDeg       float64          `json:"headingDeg"`
	LastUpdate       time.Time        `json:"lastUpdate"`
	StartedAt        time.Time        `json:"startedAt"`
	EstimatedArrival time.Time        `json:"estimatedArrival"`
	TotalDistanceKM  float64          `json:"totalDistanceKm"`
	RemainingKM      float64          `json:"remainingKm"`
	CoveredKM        float64          `json:"coveredKm"`
	FuelLevel        float64          `json:"fuelLevel"`
	OriginLabel      string           `json:"originLabel,omitempty"`
	DestinationLabel string           `json:"destinationLabel,omitempty"`
	Status           Status           `json:"status"`
	RouteIndex       int              `json:"routeIndex"`
	Ticks            int              `json:"ticks"`
	Route            route.Route      `json:"-"`

	startFuel float64
}

// Arrived reports whether the truck has exhausted its route.
func (r Record) Arrived() bool { return r.Status == StatusArrived }

// Sample is the immutable snapshot published to subscribers on every tick.
type Sample struct {
	TruckID    string           `json:"truckId"`
	Position   utils.Coordinate `json:"position"`
	SpeedKMH   float64          `json:"speedKmh"`
	HeadingDeg float64          `json:"headingDeg"`
	Timestamp  time.Time        `json:"timestamp"`
	FuelLevel  float64          `json:"fuelLevel"`
	Location   string           `json:"location"`
	Status     Status           `json:"status"`
}

// StartOptions carries the optional inputs of StartTracking.
type StartOptions struct {
	// Destination ends the generated route. A random nearby point is used when nil.
	Destination      *utils.Coordinate
	OriginLabel      string
	DestinationLabel string
}

// UpdateFunc receives every Sample a subscription is registered for.
type UpdateFunc func(Sample)

// ArrivalFunc receives the record of a truck the moment it arrives.
type ArrivalFunc func(Record)
