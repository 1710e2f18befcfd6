package gtfsrt

import (
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

const gtfsRealtimeVersion = "2.0"

// EntityID is the feed entity id of a truck, prefixed by agency when set.
func EntityID(agencyID, truckID string) string {
	if agencyID == "" {
		return truckID
	}
	return agencyID + "_" + truckID
}

// BuildVehiclePositionsFeed builds a FULL_DATASET feed with one entity per record.
func BuildVehiclePositionsFeed(records []tracking.Record, agencyID string, now time.Time) *gtfs.FeedMessage {
	fm := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
		Entity: make([]*gtfs.FeedEntity, 0, len(records)),
	}
	for _, r := range records {
		fm.Entity = append(fm.Entity, &gtfs.FeedEntity{
			Id:      proto.String(EntityID(agencyID, r.TruckID)),
			Vehicle: vehiclePosition(r),
		})
	}
	return fm
}

func vehiclePosition(r tracking.Record) *gtfs.VehiclePosition {
	status := gtfs.VehiclePosition_IN_TRANSIT_TO
	if r.Arrived() {
		status = gtfs.VehiclePosition_STOPPED_AT
	}
	vd := &gtfs.VehicleDescriptor{Id: proto.String(r.TruckID)}
	if r.DestinationLabel != "" {
		vd.Label = proto.String(r.DestinationLabel)
	}
	vp := &gtfs.VehiclePosition{
		Vehicle: vd,
		Position: &gtfs.Position{
			Latitude:  proto.Float32(float32(r.Position.Lat)),
			Longitude: proto.Float32(float32(r.Position.Lng)),
			Bearing:   proto.Float32(float32(r.HeadingDeg)),
			Speed:     proto.Float32(float32(utils.KMHToMetersPerSecond(r.SpeedKMH))),
			Odometer:  proto.Float64(r.CoveredKM * utils.MetersPerKM),
		},
		CurrentStatus: status.Enum(),
	}
	if !r.LastUpdate.IsZero() {
		vp.Timestamp = proto.Uint64(uint64(r.LastUpdate.Unix()))
	}
	return vp
}

// MarshalFeed encodes fm as protobuf.
func MarshalFeed(fm *gtfs.FeedMessage) ([]byte, error) {
	data, err := proto.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return data, nil
}

// ParseVehiclePositions decodes a feed and returns its vehicle entities in feed
// order. Entities without a vehicle position are skipped.
func ParseVehiclePositions(data []byte) ([]VehiclePosition, error) {
	fm, err := unmarshalFeed(data)
	if err != nil {
		return nil, err
	}
	out := make([]VehiclePosition, 0, len(fm.GetEntity()))
	for _, e := range fm.GetEntity() {
		if e.GetVehicle() == nil {
			continue
		}
		out = append(out, decodeVehicle(e))
	}
	return out, nil
}

func unmarshalFeed(data []byte) (*gtfs.FeedMessage, error) {
	fm := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(data, fm); err != nil {
		return nil, fmt.Errorf("unmarshal feed: %w", err)
	}
	return fm, nil
}

func decodeVehicle(e *gtfs.FeedEntity) VehiclePosition {
	v := e.GetVehicle()
	p := v.GetPosition()
	vp := VehiclePosition{
		EntityID:   e.GetId(),
		VehicleID:  v.GetVehicle().GetId(),
		Label:      v.GetVehicle().GetLabel(),
		Latitude:   float64(p.GetLatitude()),
		Longitude:  float64(p.GetLongitude()),
		BearingDeg: float64(p.GetBearing()),
		SpeedMS:    float64(p.GetSpeed()),
		OdometerM:  p.GetOdometer(),
		StoppedAt:  v.GetCurrentStatus() == gtfs.VehiclePosition_STOPPED_AT,
	}
	if v.Timestamp != nil {
		vp.Timestamp = time.Unix(int64(v.GetTimestamp()), 0).UTC()
	}
	return vp
}
