package animation

import (
	"testing"
	"time"

	c "lautenbacher.net/smartled/config"
)

func TestNightDimmer_Level(t *testing.T) {
	// on the equator at the prime meridian the sun rises around 06:00 UTC
	// and sets around 18:00 UTC all year
	dimmer := NewNightDimmer(c.NightDimConfig{
		Enabled:  true,
		DimLevel: 40,
	})

	noon := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	if level := dimmer.Level(noon); level != 255 {
		t.Errorf("Expected full brightness at noon, got %d", level)
	}

	midnight := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	if level := dimmer.Level(midnight); level != 40 {
		t.Errorf("Expected dim level at midnight, got %d", level)
	}
}
