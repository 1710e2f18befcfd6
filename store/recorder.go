package store

import (
	"context"
	"log"
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
)

const defaultWriteTimeout = 5 * time.Second

// Recorder writes one Delivery per arrival notification of a tracking engine.
type Recorder struct {
	db      *DB
	timeout time.Duration
}

// NewRecorder creates a recorder writing to db. A non-positive timeout uses
// five seconds per write.
func NewRecorder(db *DB, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Recorder{db: db, timeout: timeout}
}

// Attach subscribes the recorder to e's arrivals. Unsubscribe the returned
// handle to detach it.
func (r *Recorder) Attach(e *tracking.Engine) *tracking.Subscription {
	return e.OnArrival(r.Record)
}

// Record stores the run that rec completed. Failures are logged, not returned:
// it runs on the engine's tick goroutine.
func (r *Recorder) Record(rec tracking.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	d := DeliveryFromRecord(rec)
	inserted, err := r.db.RecordDelivery(ctx, d)
	if err != nil {
		log.Printf("[store] failed to record delivery of %s: %v", rec.TruckID, err)
		return
	}
	if inserted {
		log.Printf("[store] recorded delivery of %s: %.2f km in %s", d.TruckID, d.DistanceKM, d.Duration().Round(time.Second))
	}
}

// DeliveryFromRecord converts an arrived record.
func DeliveryFromRecord(rec tracking.Record) Delivery {
	return Delivery{
		TruckID:          rec.TruckID,
		OriginLabel:      rec.OriginLabel,
		DestinationLabel: rec.DestinationLabel,
		DistanceKM:       rec.CoveredKM,
		Ticks:            rec.Ticks,
		StartedAt:        rec.StartedAt,
		ArrivedAt:        rec.LastUpdate,
	}
}
