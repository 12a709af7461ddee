package animation

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	c "lautenbacher.net/smartled/config"
)

// NightDimmer derives a brightness level from the local sunrise and sunset:
// full brightness during the day, the configured dim level between sunset
// and sunrise.
type NightDimmer struct {
	latitude  float64
	longitude float64
	dimLevel  byte
}

// NewNightDimmer creates a dimmer from its config section.
func NewNightDimmer(cfg c.NightDimConfig) *NightDimmer {
	return &NightDimmer{
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		dimLevel:  cfg.DimLevel,
	}
}

// Level returns the brightness scaling (255 = no dimming) for the given
// point in time.
func (d *NightDimmer) Level(now time.Time) byte {
	rise, set := sunrise.SunriseSunset(d.latitude, d.longitude, now.Year(), now.Month(), now.Day())
	if now.After(rise) && now.Before(set) {
		return 255
	}
	return d.dimLevel
}
