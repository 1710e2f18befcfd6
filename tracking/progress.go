package tracking

import (
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

// maxOpenPercent keeps an unfinished run strictly below 100 %; only the
// Arrived flag means done.
const maxOpenPercent = 99.9

// Progress is the display summary of a tracking run.
type Progress struct {
	TruckID      string    `json:"truckId"`
	Percent      float64   `json:"percent"`
	CoveredKM    float64   `json:"coveredKm"`
	RemainingKM  float64   `json:"remainingKm"`
	ETA          time.Time `json:"eta"`
	ETAText      string    `json:"etaText"`
	DistanceText string    `json:"distanceText"`
	Arrived      bool      `json:"arrived"`
}

// ProgressOf summarizes rec as seen at now.
func ProgressOf(rec Record, now time.Time) Progress {
	p := Progress{
		TruckID:     rec.TruckID,
		CoveredKM:   rec.CoveredKM,
		RemainingKM: rec.RemainingKM,
		Arrived:     rec.Arrived(),
	}
	if rec.TotalDistanceKM > 0 {
		p.Percent = min(max(rec.CoveredKM/rec.TotalDistanceKM*100, 0), maxOpenPercent)
	}

	switch {
	case p.Arrived:
		p.ETA = rec.LastUpdate
	case rec.SpeedKMH > 0:
		p.ETA = now.Add(hoursToDuration(rec.RemainingKM / rec.SpeedKMH))
	default:
		p.ETA = rec.EstimatedArrival
	}
	p.ETAText = utils.PresentableETA(now, p.ETA, p.Arrived)
	p.DistanceText = utils.PresentableDistance(rec.RemainingKM)
	return p
}

// Progress returns the progress of id, or false when id is not tracked.
func (e *Engine) Progress(id string) (Progress, bool) {
	rec, ok := e.GetTrackingInfo(id)
	if !ok {
		return Progress{}, false
	}
	return ProgressOf(rec, e.clock.Now()), true
}
