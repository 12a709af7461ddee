// Package config reads the yaml configuration file and translates it into
// the types the rest of the program works with.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"lautenbacher.net/smartled/pulse"
)

const CONFILE = "config.yml"

// Duration decodes yaml strings like "350ns" or "20ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type TimingsConfig struct {
	T0H   Duration `yaml:"T0H"`
	T0L   Duration `yaml:"T0L"`
	T1H   Duration `yaml:"T1H"`
	T1L   Duration `yaml:"T1L"`
	Reset Duration `yaml:"Reset"`
}

type HardwareConfig struct {
	Platform     string         `yaml:"Platform"`
	LedsTotal    int            `yaml:"LedsTotal"`
	LEDType      string         `yaml:"LEDType"`
	ChannelOrder string         `yaml:"ChannelOrder"`
	ClockHz      int            `yaml:"ClockHz"`
	SPIFrequency int            `yaml:"SPIFrequency"`
	Timings      *TimingsConfig `yaml:"Timings"`
}

type DisplayConfig struct {
	Brightness byte `yaml:"Brightness"`
	Gamma      bool `yaml:"Gamma"`
}

type RainbowConfig struct {
	Enabled bool     `yaml:"Enabled"`
	Delay   Duration `yaml:"Delay"`
	Spread  bool     `yaml:"Spread"`
}

type NightDimConfig struct {
	Enabled   bool    `yaml:"Enabled"`
	Latitude  float64 `yaml:"Latitude"`
	Longitude float64 `yaml:"Longitude"`
	DimLevel  byte    `yaml:"DimLevel"`
}

type ChimeConfig struct {
	Enabled    bool `yaml:"Enabled"`
	SampleRate int  `yaml:"SampleRate"`
	Volume     byte `yaml:"Volume"`
}

type LoggingConfig struct {
	Level  string `yaml:"Level"`
	Format string `yaml:"Format"`
	File   string `yaml:"File"`
}

type Config struct {
	Configfile string         `yaml:"-"`
	Hardware   HardwareConfig `yaml:"Hardware"`
	Display    DisplayConfig  `yaml:"Display"`
	Rainbow    RainbowConfig  `yaml:"Rainbow"`
	NightDim   NightDimConfig `yaml:"NightDim"`
	Chime      ChimeConfig    `yaml:"Chime"`
	Logging    LoggingConfig  `yaml:"Logging"`
}

// ReadConfig parses and validates the config file.
func ReadConfig(cfile string) (*Config, error) {
	f, err := os.Open(cfile)
	if err != nil {
		return nil, fmt.Errorf("can't open config file %s: %w", cfile, err)
	}
	defer f.Close()

	conf := &Config{}
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(conf); err != nil {
		return nil, fmt.Errorf("can't decode config file %s: %w", cfile, err)
	}
	conf.Configfile = cfile
	conf.applyDefaults()
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", cfile, err)
	}
	return conf, nil
}

// applyDefaults fills in the values an abbreviated config file leaves out.
func (c *Config) applyDefaults() {
	if c.Display.Brightness == 0 {
		c.Display.Brightness = 255
	}
	if c.Chime.SampleRate == 0 {
		c.Chime.SampleRate = 44100
	}
	if c.Chime.Volume == 0 {
		c.Chime.Volume = 50
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Hardware.Platform) {
	case "sim", "tui", "rpi":
	default:
		return fmt.Errorf("unknown platform %q", c.Hardware.Platform)
	}
	if c.Hardware.LedsTotal < 1 {
		return fmt.Errorf("LedsTotal %d must be at least 1", c.Hardware.LedsTotal)
	}
	if _, err := c.TimingSpec(); err != nil {
		return err
	}
	if _, err := c.Order(); err != nil {
		return err
	}
	if c.PulseClockHz() <= 0 {
		return fmt.Errorf("no usable pulse clock (ClockHz %d, SPIFrequency %d)",
			c.Hardware.ClockHz, c.Hardware.SPIFrequency)
	}
	return nil
}

// TimingSpec returns the protocol timings for the configured LED type, with
// any explicit override applied on top.
func (c *Config) TimingSpec() (pulse.TimingSpec, error) {
	var spec pulse.TimingSpec
	switch strings.ToUpper(c.Hardware.LEDType) {
	case "WS2812", "WS2812B", "":
		spec = pulse.WS2812Spec()
	case "SK6812", "SK6812W":
		spec = pulse.SK6812Spec()
	default:
		return spec, fmt.Errorf("unknown LED type %q", c.Hardware.LEDType)
	}
	if t := c.Hardware.Timings; t != nil {
		spec = pulse.TimingSpec{
			T0H:   t.T0H.Std(),
			T0L:   t.T0L.Std(),
			T1H:   t.T1H.Std(),
			T1L:   t.T1L.Std(),
			Reset: t.Reset.Std(),
		}
	}
	return spec, nil
}

// Order returns the configured wire order, defaulting to GRB for RGB strips
// and GRBW for SK6812W.
func (c *Config) Order() (pulse.ChannelOrder, error) {
	if c.Hardware.ChannelOrder == "" {
		if strings.EqualFold(c.Hardware.LEDType, "SK6812W") {
			return pulse.OrderGRBW, nil
		}
		return pulse.OrderGRB, nil
	}
	return pulse.ParseChannelOrder(c.Hardware.ChannelOrder)
}

// PulseClockHz returns the tick rate the timing table has to be computed
// for: the configured peripheral clock, or the SPI bit clock on the rpi
// platform where SPI is the pulse generator.
func (c *Config) PulseClockHz() int {
	if strings.ToLower(c.Hardware.Platform) == "rpi" {
		return c.Hardware.SPIFrequency
	}
	return c.Hardware.ClockHz
}
