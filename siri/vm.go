package siri

// VehicleMonitoring represents the VehicleMonitoring delivery
type VehicleMonitoring struct {
	ResponseTimestamp string                 `json:"ResponseTimestamp"`
	ValidUntil        string                 `json:"ValidUntil,omitempty"`
	VehicleActivity   []VehicleActivityEntry `json:"VehicleActivity"`
}

// VehicleActivityEntry represents a single vehicle's activity
type VehicleActivityEntry struct {
	RecordedAtTime          string                  `json:"RecordedAtTime"`
	ValidUntilTime          string                  `json:"ValidUntilTime,omitempty"`
	MonitoredVehicleJourney MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
	Extensions              *ActivityExtensions     `json:"Extensions,omitempty"`
}

// MonitoredVehicleJourney contains details about a monitored truck run
type MonitoredVehicleJourney struct {
	OperatorRef              string           `json:"OperatorRef,omitempty"`
	OriginName               string           `json:"OriginName,omitempty"`
	DestinationName          string           `json:"DestinationName,omitempty"`
	OriginAimedDepartureTime string           `json:"OriginAimedDepartureTime,omitempty"`
	Monitored                bool             `json:"Monitored"`
	DataSource               string           `json:"DataSource"`
	VehicleLocation          *VehicleLocation `json:"VehicleLocation,omitempty"`
	Bearing                  *float64         `json:"Bearing,omitempty"`
	Velocity                 *int             `json:"Velocity,omitempty"` // m/s
	VehicleStatus            string           `json:"VehicleStatus,omitempty"`
	ProgressStatus           string           `json:"ProgressStatus,omitempty"`
	VehicleRef               string           `json:"VehicleRef"`
	MonitoredCall            *MonitoredCall   `json:"MonitoredCall,omitempty"`
	IsCompleteStopSequence   bool             `json:"IsCompleteStopSequence"`
}

// VehicleLocation represents the geographical location of a vehicle
type VehicleLocation struct {
	Latitude  *float64 `json:"Latitude"`
	Longitude *float64 `json:"Longitude"`
}

// MonitoredCall describes the drop-off the truck is heading to
type MonitoredCall struct {
	StopPointName         string           `json:"StopPointName,omitempty"`
	VehicleAtStop         *bool            `json:"VehicleAtStop,omitempty"`
	VehicleLocationAtStop *VehicleLocation `json:"VehicleLocationAtStop,omitempty"`
	ExpectedArrivalTime   string           `json:"ExpectedArrivalTime,omitempty"`
	DestinationDisplay    string           `json:"DestinationDisplay,omitempty"`
}

// ActivityExtensions carries the non-SIRI figures of a delivery truck.
type ActivityExtensions struct {
	Distances Distances `json:"Distances"`
	FuelLevel float64   `json:"FuelLevel"`
}

// Distances mirrors the progress widget of the console.
type Distances struct {
	PresentableDistance string  `json:"PresentableDistance"`
	DistanceCovered     float64 `json:"DistanceCovered"`
	DistanceRemaining   float64 `json:"DistanceRemaining"`
	PercentComplete     float64 `json:"PercentComplete"`
}
