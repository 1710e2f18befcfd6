package store

import (
	"context"
	"fmt"
	"time"
)

// Delivery is one completed tracking run.
type Delivery struct {
	ID               int64     `json:"id"`
	TruckID          string    `json:"truckId"`
	OriginLabel      string    `json:"originLabel,omitempty"`
	DestinationLabel string    `json:"destinationLabel,omitempty"`
	DistanceKM       float64   `json:"distanceKm"`
	Ticks            int       `json:"ticks"`
	StartedAt        time.Time `json:"startedAt"`
	ArrivedAt        time.Time `json:"arrivedAt"`
}

// Duration is the time from start to arrival.
func (d Delivery) Duration() time.Duration { return d.ArrivedAt.Sub(d.StartedAt) }

// RecordDelivery inserts d. A run is identified by truck and start time, so
// recording the same run twice is a no-op; the result reports whether a row was
// written.
func (db *DB) RecordDelivery(ctx context.Context, d Delivery) (bool, error) {
	if db == nil {
		return false, ErrNoStore
	}
	res, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO deliveries (
			truck_id, origin_label, destination_label, distance_km, ticks,
			started_at_unix_ms, arrived_at_unix_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.TruckID, d.OriginLabel, d.DestinationLabel, d.DistanceKM, d.Ticks,
		d.StartedAt.UnixMilli(), d.ArrivedAt.UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("record delivery for %s: %w", d.TruckID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record delivery for %s: %w", d.TruckID, err)
	}
	return n > 0, nil
}

// ListDeliveries returns the deliveries of truckID, oldest arrival first.
func (db *DB) ListDeliveries(ctx context.Context, truckID string) ([]Delivery, error) {
	if db == nil {
		return nil, ErrNoStore
	}
	rows, err := db.QueryContext(ctx,
		`SELECT delivery_id, truck_id, origin_label, destination_label, distance_km, ticks,
			started_at_unix_ms, arrived_at_unix_ms
		FROM deliveries
		WHERE truck_id = ?
		ORDER BY arrived_at_unix_ms, delivery_id`,
		truckID,
	)
	if err != nil {
		return nil, fmt.Errorf("list deliveries for %s: %w", truckID, err)
	}
	defer rows.Close()

	out := []Delivery{}
	for rows.Next() {
		var d Delivery
		var startedMS, arrivedMS int64
		if err := rows.Scan(&d.ID, &d.TruckID, &d.OriginLabel, &d.DestinationLabel,
			&d.DistanceKM, &d.Ticks, &startedMS, &arrivedMS); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.StartedAt = time.UnixMilli(startedMS).UTC()
		d.ArrivedAt = time.UnixMilli(arrivedMS).UTC()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries for %s: %w", truckID, err)
	}
	return out, nil
}

// TotalDistance sums the distance of every recorded delivery of truckID.
func (db *DB) TotalDistance(ctx context.Context, truckID string) (float64, error) {
	if db == nil {
		return 0, ErrNoStore
	}
	var total float64
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(distance_km), 0) FROM deliveries WHERE truck_id = ?`,
		truckID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total distance for %s: %w", truckID, err)
	}
	return total, nil
}
