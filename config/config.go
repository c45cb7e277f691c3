// Package config reads and validates the YAML configuration of the goshift
// demo application: which transmitter backend to use, the pin assignment,
// the attached peripheral, logging, and the runtime-tunable demo settings.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in Hardware.Backend.
const (
	BackendPeriph     = "periph"     // bit-banged, periph.io registry pins
	BackendRpio       = "rpio"       // bit-banged, go-rpio memory-mapped pins
	BackendSPI        = "spi"        // hardware SPI port, GPIO latch
	BackendSimulation = "simulation" // recorder pins + TUI
)

// Peripheral names accepted in Hardware.Peripheral.
const (
	Peripheral74HC595 = "74HC595"
	PeripheralMAX7219 = "MAX7219"
)

type Config struct {
	Hardware HardwareConfig `yaml:"Hardware"`
	Demo     DemoConfig     `yaml:"Demo"`
	Logging  LoggingConfig  `yaml:"Logging"`

	// Path of the file this config was read from; set by ReadConfig, used
	// by the runtime watcher.
	Configfile string `yaml:"-"`
}

type HardwareConfig struct {
	Backend    string    `yaml:"Backend"`
	Peripheral string    `yaml:"Peripheral"`
	Pins       PinConfig `yaml:"Pins"`
	SPI        SPIConfig `yaml:"SPI"`
}

// PinConfig is the pin triple of the bit-banged backends, as Broadcom GPIO
// numbers. The SPI backend only uses Latch.
type PinConfig struct {
	Latch int `yaml:"Latch"`
	Data  int `yaml:"Data"`
	Clock int `yaml:"Clock"`
}

type SPIConfig struct {
	Device    string `yaml:"Device"`    // e.g. /dev/spidev0.0, empty for first available
	Frequency int    `yaml:"Frequency"` // bus clock in Hz
}

// DemoConfig is the runtime-tunable part of the configuration. It can be
// edited in the config file while the application runs; the watcher in
// runtime.go picks the change up.
type DemoConfig struct {
	Pattern   string        `yaml:"Pattern"`   // "counter" or "chaser"
	Interval  time.Duration `yaml:"Interval"`  // time between pattern steps
	Intensity int           `yaml:"Intensity"` // MAX7219 brightness, 0..15
}

type LoggingConfig struct {
	Level  string `yaml:"Level"`
	Format string `yaml:"Format"`
	File   string `yaml:"File"`
}

// ReadConfig loads and validates the configuration from the given file.
func ReadConfig(cfile string) (*Config, error) {
	f, err := os.Open(cfile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", cfile, err)
	}
	defer f.Close()

	conf := &Config{}
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(conf); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", cfile, err)
	}
	conf.Configfile = cfile

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", cfile, err)
	}
	return conf, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Hardware.Backend) {
	case BackendPeriph, BackendRpio, BackendSimulation:
		p := c.Hardware.Pins
		if p.Latch == p.Data || p.Latch == p.Clock || p.Data == p.Clock {
			return fmt.Errorf("pins must be distinct, got latch=%d data=%d clock=%d",
				p.Latch, p.Data, p.Clock)
		}
	case BackendSPI:
		if c.Hardware.SPI.Frequency <= 0 {
			return fmt.Errorf("SPI frequency must be positive, got %d", c.Hardware.SPI.Frequency)
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Hardware.Backend)
	}

	switch strings.ToUpper(c.Hardware.Peripheral) {
	case Peripheral74HC595, PeripheralMAX7219:
	default:
		return fmt.Errorf("unknown peripheral: %q", c.Hardware.Peripheral)
	}

	return c.Demo.Validate()
}

// Validate checks the runtime-tunable subset. Called separately by the
// watcher so that a bad edit never reaches the running demo.
func (d *DemoConfig) Validate() error {
	switch strings.ToLower(d.Pattern) {
	case "counter", "chaser":
	default:
		return fmt.Errorf("unknown pattern: %q", d.Pattern)
	}
	if d.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", d.Interval)
	}
	if d.Intensity < 0 || d.Intensity > 15 {
		return fmt.Errorf("intensity must be in 0..15, got %d", d.Intensity)
	}
	return nil
}
