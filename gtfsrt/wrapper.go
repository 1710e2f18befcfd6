package gtfsrt

import (
	"slices"
	"strings"
	"time"
)

// Wrapper indexes the vehicles of a decoded VehiclePositions feed for lookups.
type Wrapper struct {
	headerTimestamp time.Time
	vehicles        []VehiclePosition
	byVehicle       map[string]int
}

// NewWrapper creates an empty wrapper.
func NewWrapper() *Wrapper {
	return &Wrapper{byVehicle: map[string]int{}}
}

// Load replaces the indexed data with the feed in data. On error the previous
// contents are kept.
func (w *Wrapper) Load(data []byte) error {
	fm, err := unmarshalFeed(data)
	if err != nil {
		return err
	}
	vehicles := make([]VehiclePosition, 0, len(fm.GetEntity()))
	byVehicle := make(map[string]int, len(fm.GetEntity()))
	for _, e := range fm.GetEntity() {
		if e.GetVehicle() == nil {
			continue
		}
		vp := decodeVehicle(e)
		if vp.VehicleID != "" {
			byVehicle[vp.VehicleID] = len(vehicles)
		}
		vehicles = append(vehicles, vp)
	}

	w.vehicles = vehicles
	w.byVehicle = byVehicle
	w.headerTimestamp = time.Time{}
	if h := fm.GetHeader(); h != nil && h.Timestamp != nil {
		w.headerTimestamp = time.Unix(int64(h.GetTimestamp()), 0).UTC()
	}
	return nil
}

// GetTimestampForFeedMessage returns the header timestamp, zero when absent.
func (w *Wrapper) GetTimestampForFeedMessage() time.Time { return w.headerTimestamp }

// Vehicles returns the decoded vehicles ordered by vehicle id.
func (w *Wrapper) Vehicles() []VehiclePosition {
	out := slices.Clone(w.vehicles)
	slices.SortFunc(out, func(a, b VehiclePosition) int { return strings.Compare(a.VehicleID, b.VehicleID) })
	return out
}

// Vehicle looks up a vehicle by its descriptor id.
func (w *Wrapper) Vehicle(id string) (VehiclePosition, bool) {
	i, ok := w.byVehicle[id]
	if !ok {
		return VehiclePosition{}, false
	}
	return w.vehicles[i], true
}

// StoppedVehicles returns the ids of vehicles reported as STOPPED_AT.
func (w *Wrapper) StoppedVehicles() []string {
	var ids []string
	for _, v := range w.Vehicles() {
		if v.StoppedAt {
			ids = append(ids, v.VehicleID)
		}
	}
	return ids
}
