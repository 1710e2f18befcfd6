package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// TrackingConfig tunes the position simulation. Zero values take the engine
// defaults.
type TrackingConfig struct {
	IntervalMS      int     `yaml:"intervalMS" validate:"gte=0"`
	PointCount      int     `yaml:"pointCount" validate:"gte=0"`
	MinSpeedKMH     float64 `yaml:"minSpeedKMH" validate:"gte=0"`
	MaxSpeedKMH     float64 `yaml:"maxSpeedKMH" validate:"omitempty,gtefield=MinSpeedKMH"`
	AverageSpeedKMH float64 `yaml:"averageSpeedKMH" validate:"gte=0"`
	JitterDeg       float64 `yaml:"jitterDeg"`
	Seed            uint64  `yaml:"seed"`
}

// FieldMutators contains [from, to] renaming pairs applied to SIRI output
type FieldMutators struct {
	VehicleRef      []string `yaml:"VehicleRef"`
	OriginName      []string `yaml:"OriginName"`
	DestinationName []string `yaml:"DestinationName"`
}

// FeedConfig contains GTFS-Realtime and SIRI output settings
type FeedConfig struct {
	AgencyID      string        `yaml:"agency_id" validate:"omitempty"`
	ValidUntilMS  int           `yaml:"validUntilMS" validate:"gte=0"`
	FieldMutators FieldMutators `yaml:"fieldMutators"`
}

// StoreConfig points at the delivery log; an empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// TruckConfig is one demo truck started on boot.
type TruckConfig struct {
	ID               string  `yaml:"id" validate:"required"`
	Origin           string  `yaml:"origin" validate:"required"`
	Destination      string  `yaml:"destination"`
	OriginLabel      string  `yaml:"originLabel"`
	DestinationLabel string  `yaml:"destinationLabel"`
	DistanceKM       float64 `yaml:"distanceKM" validate:"gt=0,lte=40075"`
}

// FleetConfig lists the demo trucks.
type FleetConfig struct {
	Trucks []TruckConfig `yaml:"trucks" validate:"dive"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Tracking TrackingConfig `yaml:"tracking"`
	Feed     FeedConfig     `yaml:"feed"`
	Store    StoreConfig    `yaml:"store"`
	Fleet    FleetConfig    `yaml:"fleet"`
}
