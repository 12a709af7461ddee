package animation

import (
	"time"

	c "lautenbacher.net/smartled/config"
	"lautenbacher.net/smartled/led"
	"lautenbacher.net/smartled/util"
)

// RainbowProducer cycles through the HSV hue wheel, either with the whole
// strip in one color or with the wheel spread across the strip.
type RainbowProducer struct {
	*AbstractProducer
	delay  time.Duration
	spread bool
}

// NewRainbowProducer creates the producer from its config section.
func NewRainbowProducer(uid string, ledsChanged *util.AtomicMapEvent[LedProducer], size int, cfg c.RainbowConfig) *RainbowProducer {
	delay := cfg.Delay.Std()
	if delay <= 0 {
		delay = 20 * time.Millisecond
	}
	inst := &RainbowProducer{
		delay:  delay,
		spread: cfg.Spread,
	}
	inst.AbstractProducer = NewAbstractProducer(uid, ledsChanged, inst.runner, size)
	return inst
}

func (s *RainbowProducer) runner() {
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()
	var hue byte
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			size := len(s.leds)
			for i := 0; i < size; i++ {
				h := hue
				if s.spread && size > 1 {
					h = hue + byte(i*255/size)
				}
				s.setLed(i, led.HSV(h, 255, 255))
			}
			hue++
			s.ledsChanged.Send(s.uid, s)
		}
	}
}
