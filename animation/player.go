package animation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"lautenbacher.net/smartled/led"
	"lautenbacher.net/smartled/strip"
	"lautenbacher.net/smartled/util"
)

// how many recent frame latencies the stats line averages over
const latencyWindow = 100

const statsInterval = 30 * time.Second

// FrameWriter is the part of the strip adapter the player needs. Satisfied
// by *strip.Adapter.
type FrameWriter interface {
	WriteContext(ctx context.Context, leds []led.Led) error
	MaxLeds() int
}

// Player merges the frames of all registered producers, applies gamma,
// brightness and night dimming, and writes the result to the strip.
type Player struct {
	writer      FrameWriter
	ledsChanged *util.AtomicMapEvent[LedProducer]
	producers   map[string]LedProducer
	frames      map[string][]led.Led
	dimmer      *NightDimmer

	// guards the runtime-tunable settings below
	mu         sync.Mutex
	brightness byte
	gamma      bool

	latencies deque.Deque[time.Duration]
}

// NewPlayer creates a player writing to w. dimmer may be nil.
func NewPlayer(w FrameWriter, dimmer *NightDimmer, brightness byte, gamma bool) *Player {
	return &Player{
		writer:      w,
		ledsChanged: util.NewAtomicMapEvent[LedProducer](),
		producers:   make(map[string]LedProducer),
		frames:      make(map[string][]led.Led),
		dimmer:      dimmer,
		brightness:  brightness,
		gamma:       gamma,
	}
}

// LedsChanged returns the event the producers publish into.
func (p *Player) LedsChanged() *util.AtomicMapEvent[LedProducer] {
	return p.ledsChanged
}

// AddProducer registers a producer. Must happen before Run.
func (p *Player) AddProducer(prod LedProducer) {
	p.producers[prod.GetUID()] = prod
}

// SetBrightness changes the global brightness level at runtime.
func (p *Player) SetBrightness(level byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.brightness = level
}

// SetGamma toggles gamma correction at runtime.
func (p *Player) SetGamma(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gamma = on
}

// Run starts all producers and transmits merged frames until ctx is done.
// A frame arriving while the previous transmission is still on the wire is
// skipped; the producers keep animating, the strip shows the next one.
func (p *Player) Run(ctx context.Context) error {
	for _, prod := range p.producers {
		prod.Start()
	}
	defer func() {
		for _, prod := range p.producers {
			prod.Exit()
		}
	}()

	statsTicker := time.NewTicker(statsInterval)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Ending player loop...")
			return nil
		case <-statsTicker.C:
			p.logStats()
		case <-p.ledsChanged.Channel():
			frame := p.assembleFrame()
			start := time.Now()
			err := p.writer.WriteContext(ctx, frame)
			switch {
			case err == nil:
				p.recordLatency(time.Since(start))
			case errors.Is(err, strip.ErrBusy):
				// previous frame still on the wire, drop this one
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil
			default:
				slog.Error("Error writing frame", "error", err)
				return err
			}
		}
	}
}

// assembleFrame Max-merges the latest frame of every producer and applies
// the display transforms. Brightness and gamma stay outside the strip
// adapter on purpose; the adapter transmits exactly what it is given.
func (p *Player) assembleFrame() []led.Led {
	for uid, prod := range p.ledsChanged.Value() {
		p.frames[uid] = prod.GetLeds()
	}

	merged := make([]led.Led, p.writer.MaxLeds())
	uids := maps.Keys(p.frames)
	slices.Sort(uids)
	for _, uid := range uids {
		for i, l := range p.frames[uid] {
			if i >= len(merged) {
				break
			}
			merged[i] = l.Max(merged[i])
		}
	}

	p.mu.Lock()
	brightness := p.brightness
	gamma := p.gamma
	p.mu.Unlock()

	if gamma {
		led.GammaAll(merged)
	}
	led.Brightness(merged, brightness)
	if p.dimmer != nil {
		led.Brightness(merged, p.dimmer.Level(time.Now()))
	}
	return merged
}

func (p *Player) recordLatency(d time.Duration) {
	p.latencies.PushBack(d)
	if p.latencies.Len() > latencyWindow {
		p.latencies.PopFront()
	}
}

func (p *Player) logStats() {
	n := p.latencies.Len()
	if n == 0 {
		return
	}
	var sum time.Duration
	for i := 0; i < n; i++ {
		sum += p.latencies.At(i)
	}
	slog.Info("Frame statistics", "frames", n, "avgLatency", sum/time.Duration(n))
}
