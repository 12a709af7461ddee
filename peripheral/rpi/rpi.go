// Package rpi generates LED pulse trains on a Raspberry Pi through the SPI
// peripheral: the SPI bit clock is used as the pulse clock, so every tick of
// a pulse code becomes one bit on the MOSI line. An adapter driving this
// channel must be constructed with clockHz equal to the configured SPI
// frequency (2.4 MHz works well for WS2812: a bit then encodes to the
// classic 1-2 / 2-1 bit pattern).
package rpi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"lautenbacher.net/smartled/peripheral"
	"lautenbacher.net/smartled/pulse"
)

// Channel is a pulse channel backed by the Pi's SPI0 peripheral.
type Channel struct {
	spiFreq int

	mu       sync.Mutex
	open     bool
	inflight bool
}

// New opens GPIO and SPI and configures the SPI clock. The returned channel
// must be closed when done.
func New(spiFrequency int) (*Channel, error) {
	if spiFrequency <= 0 {
		return nil, fmt.Errorf("rpi: invalid SPI frequency %d", spiFrequency)
	}
	slog.Info("Initialise GPIO and SPI...", "frequency", spiFrequency)
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open rpio: %w", err)
	}
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		rpio.Close()
		return nil, fmt.Errorf("failed to begin spi: %w", err)
	}
	rpio.SpiSpeed(spiFrequency)
	return &Channel{spiFreq: spiFrequency, open: true}, nil
}

// ClockHz returns the pulse clock rate of this channel, i.e. the SPI bit
// frequency. Pass this to strip.New.
func (c *Channel) ClockHz() int {
	return c.spiFreq
}

// Close releases SPI and GPIO.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return
	}
	c.open = false
	rpio.SpiEnd(rpio.Spi0)
	if err := rpio.Close(); err != nil {
		slog.Error("Error closing rpio", "error", err)
	}
}

// Submit implements peripheral.Channel. The frame is flattened into an SPI
// bitstream and shifted out on a worker goroutine; the handle completes when
// the exchange returns.
func (c *Channel) Submit(codes []pulse.Code) (*peripheral.Transmission, error) {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return nil, errors.New("rpi: channel closed")
	}
	if c.inflight {
		c.mu.Unlock()
		return nil, errors.New("rpi: transmission in progress")
	}
	c.inflight = true
	c.mu.Unlock()

	data := flatten(codes)
	tx := peripheral.NewTransmission()
	go func() {
		rpio.SpiTransmit(data...)
		c.mu.Lock()
		c.inflight = false
		c.mu.Unlock()
		tx.Complete(nil)
	}()
	return tx, nil
}

// flatten renders pulse codes into the outgoing bitstream, one bit per
// tick, MSB first. Trailing bits of the last byte stay low, which only
// lengthens the reset tail.
func flatten(codes []pulse.Code) []byte {
	ticks := 0
	for _, code := range codes {
		ticks += code.TotalTicks()
	}
	out := make([]byte, (ticks+7)/8)
	pos := 0
	emit := func(high bool, n int) {
		if high {
			for i := 0; i < n; i++ {
				out[(pos+i)/8] |= 0x80 >> uint((pos+i)%8)
			}
		}
		pos += n
	}
	for _, code := range codes {
		emit(code.High1, int(code.Ticks1))
		emit(code.High2, int(code.Ticks2))
	}
	return out
}
