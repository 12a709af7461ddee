// Package tui is the simulation backend: a terminal "LED strip" built with
// tview. Submitted frames are decoded from their pulse codes back into
// colors, so the display exercises the exact same wire format a real strip
// would see.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"lautenbacher.net/smartled/led"
	"lautenbacher.net/smartled/peripheral"
	"lautenbacher.net/smartled/pulse"
)

// Display is a pulse channel that renders frames in the terminal.
type Display struct {
	app     *tview.Application
	stripe  *tview.TextView
	info    *tview.TextView
	timings pulse.Timings
	order   pulse.ChannelOrder

	mu     sync.Mutex
	frames int

	quit     chan struct{}
	quitOnce sync.Once
}

// New builds the display for a strip decoded with the given timing table
// and wire order.
func New(timings pulse.Timings, order pulse.ChannelOrder, ledsTotal int) *Display {
	d := &Display{
		app:     tview.NewApplication(),
		timings: timings,
		order:   order,
		quit:    make(chan struct{}),
	}

	intro := tview.NewTextView()
	intro.SetBorder(true).SetTitle(" SMARTLED Simulation ").SetTitleColor(tcell.ColorLightBlue)
	intro.SetText("Hit [#ff0000]q[-] to exit")
	intro.SetTextAlign(1)
	intro.SetDynamicColors(true)
	intro.SetBackgroundColor(tcell.ColorDarkSlateGray)
	d.info = intro

	stripe := tview.NewTextView()
	stripe.SetBorder(true)
	stripe.SetDynamicColors(true)
	stripe.SetText(strings.Repeat("·", ledsTotal))
	d.stripe = stripe

	layout := tview.NewFlex()
	layout.SetDirection(tview.FlexRow)
	layout.AddItem(intro, 4, 1, false)
	layout.AddItem(stripe, 3, 1, false)

	d.app.SetRoot(layout, true)
	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyCtrlC {
			d.quitOnce.Do(func() { close(d.quit) })
			return nil
		}
		return event
	})
	return d
}

// Start runs the tview event loop in its own goroutine.
func (d *Display) Start() error {
	go func() {
		if err := d.app.Run(); err != nil {
			panic(err)
		}
	}()
	return nil
}

// Stop tears the terminal UI down.
func (d *Display) Stop() {
	d.quitOnce.Do(func() { close(d.quit) })
	d.app.Stop()
}

// Quit is closed when the user asked to exit.
func (d *Display) Quit() <-chan struct{} {
	return d.quit
}

// Submit implements peripheral.Channel: the frame is decoded and drawn, and
// the handle completes once the update has been queued.
func (d *Display) Submit(codes []pulse.Code) (*peripheral.Transmission, error) {
	leds, err := pulse.DecodeFrame(codes, d.timings, d.order)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.frames++
	count := d.frames
	d.mu.Unlock()

	text := renderStripe(leds)
	d.app.QueueUpdateDraw(func() {
		d.stripe.SetText(text)
		d.stripe.SetTitle(fmt.Sprintf(" %d LEDs, frame %d ", len(leds), count))
	})

	tx := peripheral.NewTransmission()
	tx.Complete(nil)
	return tx, nil
}

// renderStripe turns a decoded frame into a tview color-tagged line.
func renderStripe(leds []led.Led) string {
	var buf strings.Builder
	for _, l := range leds {
		buf.WriteString(scaledColor(l))
		buf.WriteString("█")
	}
	buf.WriteString("[-]")
	return buf.String()
}

// scaledColor folds a possible white channel into the RGB color tag used by
// tview dynamic colors.
func scaledColor(l led.Led) string {
	r := min(int(l.Red)+int(l.White), 255)
	g := min(int(l.Green)+int(l.White), 255)
	b := min(int(l.Blue)+int(l.White), 255)
	return fmt.Sprintf("[#%02x%02x%02x]", r, g, b)
}
