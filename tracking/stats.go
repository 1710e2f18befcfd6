package tracking

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FleetStats aggregates the speeds and distances of a set of records.
type FleetStats struct {
	Trucks          int     `json:"trucks"`
	Moving          int     `json:"moving"`
	Arrived         int     `json:"arrived"`
	MeanSpeedKMH    float64 `json:"meanSpeedKmh"`
	StdDevSpeedKMH  float64 `json:"stdDevSpeedKmh"`
	MinSpeedKMH     float64 `json:"minSpeedKmh"`
	MaxSpeedKMH     float64 `json:"maxSpeedKmh"`
	TotalCoveredKM  float64 `json:"totalCoveredKm"`
	TotalRemainKM   float64 `json:"totalRemainingKm"`
	MeanFuelPercent float64 `json:"meanFuelPercent"`
}

// ComputeStats summarizes records. Speed figures only consider trucks still
// moving; arrived trucks are pinned at zero and would skew them.
func ComputeStats(records []Record) FleetStats {
	s := FleetStats{Trucks: len(records)}
	if len(records) == 0 {
		return s
	}

	speeds := make([]float64, 0, len(records))
	covered := make([]float64, len(records))
	remaining := make([]float64, len(records))
	fuel := make([]float64, len(records))
	for i, r := range records {
		covered[i] = r.CoveredKM
		remaining[i] = r.RemainingKM
		fuel[i] = r.FuelLevel
		if r.Arrived() {
			s.Arrived++
			continue
		}
		speeds = append(speeds, r.SpeedKMH)
	}
	s.Moving = len(speeds)
	s.TotalCoveredKM = floats.Sum(covered)
	s.TotalRemainKM = floats.Sum(remaining)
	s.MeanFuelPercent = stat.Mean(fuel, nil)

	switch len(speeds) {
	case 0:
	case 1:
		s.MeanSpeedKMH = speeds[0]
		s.MinSpeedKMH = speeds[0]
		s.MaxSpeedKMH = speeds[0]
	default:
		s.MeanSpeedKMH, s.StdDevSpeedKMH = stat.MeanStdDev(speeds, nil)
		s.MinSpeedKMH = floats.Min(speeds)
		s.MaxSpeedKMH = floats.Max(speeds)
	}
	return s
}

// Stats summarizes every record currently tracked.
func (e *Engine) Stats() FleetStats {
	return ComputeStats(e.Snapshot())
}
