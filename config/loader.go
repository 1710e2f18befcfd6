package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

const DefaultPort = 16181

// DefaultPaths are searched in order when no explicit path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// ErrInvalidCoordinate is returned for coordinates that are not "lat,lng" or
// fall outside the valid ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// LoadAppConfig loads and validates the configuration from the first readable
// path. With no paths it searches DefaultPaths.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	return Parse(data)
}

// Parse unmarshals and validates a YAML document.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	return cfg, nil
}

// Validate checks struct tags and the demo fleet coordinates.
func (c AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	seen := make(map[string]bool, len(c.Fleet.Trucks))
	for _, t := range c.Fleet.Trucks {
		if seen[t.ID] {
			return fmt.Errorf("validate config: duplicate truck %q", t.ID)
		}
		seen[t.ID] = true
		if _, err := ParseCoordinate(t.Origin); err != nil {
			return fmt.Errorf("truck %s origin: %w", t.ID, err)
		}
		if t.Destination != "" {
			if _, err := ParseCoordinate(t.Destination); err != nil {
				return fmt.Errorf("truck %s destination: %w", t.ID, err)
			}
		}
	}
	return nil
}

// ParseCoordinate parses "lat,lng".
func ParseCoordinate(s string) (utils.Coordinate, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return utils.Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return utils.Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return utils.Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return utils.Coordinate{}, fmt.Errorf("%w: %q out of range", ErrInvalidCoordinate, s)
	}
	return utils.Coordinate{Lat: lat, Lng: lng}, nil
}

// EngineConfig converts the tracking section for tracking.NewEngine. The clock
// is left nil so the engine uses the real one.
func (c AppConfig) EngineConfig() tracking.Config {
	t := c.Tracking
	return tracking.Config{
		TickInterval:    time.Duration(t.IntervalMS) * time.Millisecond,
		PointCount:      t.PointCount,
		MinSpeedKMH:     t.MinSpeedKMH,
		MaxSpeedKMH:     t.MaxSpeedKMH,
		AverageSpeedKMH: t.AverageSpeedKMH,
		JitterDeg:       t.JitterDeg,
		Seed:            t.Seed,
	}
}

// StartOptions resolves the destination and labels of a demo truck.
func (t TruckConfig) StartOptions() (tracking.StartOptions, error) {
	opts := tracking.StartOptions{
		OriginLabel:      t.OriginLabel,
		DestinationLabel: t.DestinationLabel,
	}
	if t.Destination != "" {
		dest, err := ParseCoordinate(t.Destination)
		if err != nil {
			return opts, err
		}
		opts.Destination = &dest
	}
	return opts, nil
}
