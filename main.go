package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lautenbacher.net/smartled/animation"
	c "lautenbacher.net/smartled/config"
	"lautenbacher.net/smartled/logging"
	"lautenbacher.net/smartled/peripheral"
	"lautenbacher.net/smartled/peripheral/rpi"
	"lautenbacher.net/smartled/peripheral/sim"
	"lautenbacher.net/smartled/peripheral/tui"
	"lautenbacher.net/smartled/pulse"
	"lautenbacher.net/smartled/strip"
	"lautenbacher.net/smartled/tone"
	"lautenbacher.net/smartled/tone/audio"
)

func main() {
	cfile := flag.String("config", c.CONFILE, "path to the config file")
	flag.Parse()

	conf, err := c.ReadConfig(*cfile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	platform := strings.ToLower(conf.Hardware.Platform)
	if err := logging.Init(conf.Logging.Level, conf.Logging.Format, conf.Logging.File, platform == "tui"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logging.Close()

	if err := run(conf, platform); err != nil {
		slog.Error("Exiting with error", "error", err)
		logging.Close()
		os.Exit(1)
	}
}

func run(conf *c.Config, platform string) error {
	spec, err := conf.TimingSpec()
	if err != nil {
		return err
	}
	order, err := conf.Order()
	if err != nil {
		return err
	}
	clockHz := conf.PulseClockHz()
	ledsTotal := conf.Hardware.LedsTotal

	var channel peripheral.Channel
	var quit <-chan struct{}
	switch platform {
	case "sim":
		channel = sim.New(clockHz)
	case "tui":
		timings, err := pulse.ComputeTimings(clockHz, spec)
		if err != nil {
			return err
		}
		display := tui.New(timings, order, ledsTotal)
		if err := display.Start(); err != nil {
			return err
		}
		defer display.Stop()
		channel = display
		quit = display.Quit()
	case "rpi":
		hw, err := rpi.New(conf.Hardware.SPIFrequency)
		if err != nil {
			return err
		}
		defer hw.Close()
		channel = hw
	}

	adapter, err := strip.New(channel, clockHz, spec, ledsTotal, order)
	if err != nil {
		return err
	}
	slog.Info("Strip adapter ready", "platform", platform, "leds", ledsTotal,
		"order", order.String(), "clockHz", clockHz)

	if conf.Chime.Enabled {
		go playChime(conf.Chime)
	}

	var dimmer *animation.NightDimmer
	if conf.NightDim.Enabled {
		dimmer = animation.NewNightDimmer(conf.NightDim)
	}
	player := animation.NewPlayer(adapter, dimmer, conf.Display.Brightness, conf.Display.Gamma)
	if conf.Rainbow.Enabled {
		player.AddProducer(animation.NewRainbowProducer("RAINBOW", player.LedsChanged(), ledsTotal, conf.Rainbow))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watcher, err := c.NewWatcher(conf.Configfile); err != nil {
		slog.Warn("Config file watching disabled", "error", err)
	} else {
		defer watcher.Stop()
		go reloadLoop(ctx, watcher, conf.Configfile, player)
	}

	ossignal := make(chan os.Signal, 1)
	signal.Notify(ossignal, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-ossignal:
			slog.Info("Received signal, shutting down...", "signal", sig)
		case <-quit:
			slog.Info("Quit from UI, shutting down...")
		case <-ctx.Done():
		}
		cancel()
	}()

	return player.Run(ctx)
}

// reloadLoop re-reads the config file on change and applies the settings
// that can be changed while running.
func reloadLoop(ctx context.Context, watcher *c.Watcher, cfile string, player *animation.Player) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-watcher.Changed():
			conf, err := c.ReadConfig(cfile)
			if err != nil {
				slog.Error("Ignoring config reload", "error", err)
				continue
			}
			player.SetBrightness(conf.Display.Brightness)
			player.SetGamma(conf.Display.Gamma)
			slog.Info("Applied runtime config", "brightness", conf.Display.Brightness,
				"gamma", conf.Display.Gamma)
		}
	}
}

// playChime plays the startup jingle through the sound card. Failures are
// logged, never fatal: the strip works fine without audio.
func playChime(cfg c.ChimeConfig) {
	synth, err := audio.NewSynth(cfg.SampleRate)
	if err != nil {
		slog.Warn("No audio output for chime", "error", err)
		return
	}
	defer synth.Close()

	buzzer := tone.NewBuzzer(synth)
	if err := buzzer.SetVolume(cfg.Volume); err != nil {
		slog.Warn("Bad chime volume", "error", err)
		return
	}
	if err := buzzer.PlaySong(tone.Chime()); err != nil {
		slog.Warn("Chime playback failed", "error", err)
	}
}
