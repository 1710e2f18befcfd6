package tracking

import (
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/internal/timeutil"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/route"
)

const (
	DefaultTickInterval    = 10 * time.Second
	DefaultMinSpeedKMH     = 40.0
	DefaultMaxSpeedKMH     = 60.0
	DefaultAverageSpeedKMH = 50.0
)

// Config tunes the simulation. Zero values fall back to the defaults above.
type Config struct {
	TickInterval    time.Duration
	PointCount      int
	MinSpeedKMH     float64
	MaxSpeedKMH     float64
	AverageSpeedKMH float64
	// JitterDeg is the span of the per-point route offset; negative disables it.
	JitterDeg float64
	// Seed makes routes and speeds reproducible; 0 seeds from the clock.
	Seed  uint64
	Clock timeutil.Clock
}

// DefaultConfig returns the reference simulation settings.
func DefaultConfig() Config {
	return Config{
		TickInterval:    DefaultTickInterval,
		PointCount:      route.DefaultPointCount,
		MinSpeedKMH:     DefaultMinSpeedKMH,
		MaxSpeedKMH:     DefaultMaxSpeedKMH,
		AverageSpeedKMH: DefaultAverageSpeedKMH,
		JitterDeg:       route.DefaultJitterDeg,
		Clock:           timeutil.RealClock{},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.PointCount <= 0 {
		c.PointCount = d.PointCount
	}
	if c.MinSpeedKMH <= 0 {
		c.MinSpeedKMH = d.MinSpeedKMH
	}
	if c.MaxSpeedKMH < c.MinSpeedKMH {
		c.MaxSpeedKMH = c.MinSpeedKMH
		if d.MaxSpeedKMH > c.MinSpeedKMH {
			c.MaxSpeedKMH = d.MaxSpeedKMH
		}
	}
	if c.AverageSpeedKMH <= 0 {
		c.AverageSpeedKMH = d.AverageSpeedKMH
	}
	switch {
	case c.JitterDeg == 0:
		c.JitterDeg = d.JitterDeg
	case c.JitterDeg < 0:
		c.JitterDeg = 0
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
	return c
}
