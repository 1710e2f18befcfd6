package tracking

import (
	"fmt"
	"math"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

const (
	fuelBurnPercentPerKM = 0.35
	minFuelLevel         = 5.0
)

// tick advances id by one route point and publishes the resulting sample.
// Only the task goroutine of id (or StartTracking before that goroutine
// exists) calls tick, so a record has a single writer.
func (e *Engine) tick(id string, t *task) {
	if t.cancelled() {
		return
	}
	speed := e.randomSpeed()

	e.mu.Lock()
	rec, ok := e.records[id]
	if !ok {
		e.mu.Unlock()
		return
	}
	arrivedNow := advance(rec, speed)
	rec.LastUpdate = e.clock.Now()
	rec.FuelLevel = fuelLevel(rec)
	sample := sampleOf(rec)
	var arrived Record
	if arrivedNow {
		arrived = *rec
	}
	global := e.updates.snapshot()
	entity := e.perTruck[id].snapshot()
	var onArrival []ArrivalFunc
	if arrivedNow {
		onArrival = e.arrivals.snapshot()
	}
	e.mu.Unlock()

	for _, fn := range global {
		fn(sample)
	}
	for _, fn := range entity {
		fn(sample)
	}
	if arrivedNow {
		Logf("[tracking] %s arrived after %d ticks, %.2f km", id, arrived.Ticks, arrived.TotalDistanceKM)
		for _, fn := range onArrival {
			fn(arrived)
		}
	}
}

// advance moves rec to its next route point, or pins it in the arrived state
// once the route is exhausted. It reports whether this call made rec arrive.
func advance(rec *Record, speed float64) bool {
	next := rec.RouteIndex + 1
	if next < rec.Route.Len() {
		from := rec.Position
		to := rec.Route.At(next)
		rec.RemainingKM = math.Max(0, rec.RemainingKM-utils.DistanceKM(from, to))
		rec.CoveredKM = rec.TotalDistanceKM - rec.RemainingKM
		rec.HeadingDeg = utils.BearingDeg(from, to)
		rec.Position = to
		rec.SpeedKMH = speed
		rec.RouteIndex = next
		rec.Ticks++
		return false
	}

	if rec.Status == StatusArrived {
		return false
	}
	rec.Status = StatusArrived
	rec.RemainingKM = 0
	rec.CoveredKM = rec.TotalDistanceKM
	rec.SpeedKMH = 0
	rec.Ticks++
	return true
}

func fuelLevel(rec *Record) float64 {
	return math.Max(minFuelLevel, rec.startFuel-rec.CoveredKM*fuelBurnPercentPerKM)
}

func sampleOf(rec *Record) Sample {
	return Sample{
		TruckID:    rec.TruckID,
		Position:   rec.Position,
		SpeedKMH:   rec.SpeedKMH,
		HeadingDeg: rec.HeadingDeg,
		Timestamp:  rec.LastUpdate,
		FuelLevel:  rec.FuelLevel,
		Location:   locationText(rec),
		Status:     rec.Status,
	}
}

func locationText(rec *Record) string {
	if rec.Status == StatusArrived {
		if rec.DestinationLabel != "" {
			return "Arrived at " + rec.DestinationLabel
		}
		return fmt.Sprintf("Arrived at %.4f, %.4f", rec.Position.Lat, rec.Position.Lng)
	}
	s := fmt.Sprintf("%.4f, %.4f", rec.Position.Lat, rec.Position.Lng)
	if rec.DestinationLabel != "" {
		s += " en route to " + rec.DestinationLabel
	}
	return s
}
