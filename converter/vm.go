package converter

import (
	"math"
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/siri"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

// SIRI VehicleStatus values used for trucks
const (
	VehicleStatusInProgress = "inProgress"
	VehicleStatusCompleted  = "completed"
)

func (c *Converter) buildActivity(r tracking.Record, now time.Time, warnings *WarningAggregator) siri.VehicleActivityEntry {
	recorded := r.LastUpdate
	if recorded.IsZero() {
		recorded = now
	}
	p := tracking.ProgressOf(r, now)

	return siri.VehicleActivityEntry{
		RecordedAtTime:          utils.Iso8601FromTime(recorded),
		ValidUntilTime:          utils.ValidUntilFrom(recorded, c.opts.ValidUntilMS),
		MonitoredVehicleJourney: c.buildMVJ(r, p, warnings),
		Extensions: &siri.ActivityExtensions{
			Distances: siri.Distances{
				PresentableDistance: p.DistanceText,
				DistanceCovered:     roundKM(r.CoveredKM),
				DistanceRemaining:   roundKM(r.RemainingKM),
				PercentComplete:     math.Round(p.Percent*10) / 10,
			},
			FuelLevel: math.Round(r.FuelLevel*10) / 10,
		},
	}
}

func (c *Converter) buildMVJ(r tracking.Record, p tracking.Progress, warnings *WarningAggregator) siri.MonitoredVehicleJourney {
	agency := c.opts.AgencyID

	// VehicleRef format: {codespace}:VehicleRef:{vehicle_id}
	vehicleID := applyFieldMutators(r.TruckID, c.opts.FieldMutators.VehicleRef)
	vehRef := agency + ":VehicleRef:" + vehicleID

	originName := applyFieldMutators(r.OriginLabel, c.opts.FieldMutators.OriginName)
	if originName == "" {
		warnings.Add(WarningNoOriginLabel, r.TruckID)
	}
	destName := applyFieldMutators(r.DestinationLabel, c.opts.FieldMutators.DestinationName)
	if destName == "" {
		warnings.Add(WarningNoDestinationLabel, r.TruckID)
	}
	if r.TotalDistanceKM <= 0 {
		warnings.Add(WarningNoPlannedDistance, r.TruckID)
	}
	if r.Route.Len() == 0 {
		warnings.Add(WarningNoRoute, r.TruckID)
	}

	lat, lng := r.Position.Lat, r.Position.Lng
	bearing := math.Round(r.HeadingDeg*100) / 100
	velocity := int(math.Round(utils.KMHToMetersPerSecond(r.SpeedKMH)))

	status := VehicleStatusInProgress
	progress := ""
	if p.Arrived {
		status = VehicleStatusCompleted
		progress = "arrived"
	}

	originAimed := ""
	if !r.StartedAt.IsZero() {
		originAimed = utils.Iso8601FromTime(r.StartedAt)
	}

	return siri.MonitoredVehicleJourney{
		OperatorRef:              agency + ":Operator:" + agency,
		OriginName:               originName,
		DestinationName:          destName,
		OriginAimedDepartureTime: originAimed,
		Monitored:                true,
		DataSource:               agency,
		VehicleLocation:          &siri.VehicleLocation{Latitude: &lat, Longitude: &lng},
		Bearing:                  &bearing,
		Velocity:                 &velocity,
		VehicleStatus:            status,
		ProgressStatus:           progress,
		VehicleRef:               vehRef,
		MonitoredCall:            buildMonitoredCall(r, p, destName),
		IsCompleteStopSequence:   false,
	}
}

// buildMonitoredCall describes the destination of the run. Without a route
// there is no known destination and the call is omitted.
func buildMonitoredCall(r tracking.Record, p tracking.Progress, destName string) *siri.MonitoredCall {
	if r.Route.Len() == 0 {
		return nil
	}
	dest := r.Route.Destination()
	lat, lng := dest.Lat, dest.Lng
	atStop := p.Arrived

	name := destName
	if name == "" {
		name = dest.String()
	}
	mc := &siri.MonitoredCall{
		StopPointName:         name,
		VehicleAtStop:         &atStop,
		VehicleLocationAtStop: &siri.VehicleLocation{Latitude: &lat, Longitude: &lng},
		DestinationDisplay:    p.ETAText,
	}
	if !p.ETA.IsZero() {
		mc.ExpectedArrivalTime = utils.Iso8601FromTime(p.ETA)
	}
	return mc
}

// applyFieldMutators applies [from,to] pairs to a reference value
func applyFieldMutators(value string, mapping []string) string {
	if len(mapping) < 2 {
		return value
	}
	for i := 0; i+1 < len(mapping); i += 2 {
		from := mapping[i]
		to := mapping[i+1]
		if value == from {
			return to
		}
	}
	return value
}

func roundKM(km float64) float64 {
	return math.Round(km*1000) / 1000
}
