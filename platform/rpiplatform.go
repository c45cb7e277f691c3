package platform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"lautenbacher.net/goshift/bus"
	"lautenbacher.net/goshift/config"
	"lautenbacher.net/goshift/pin"
)

// RaspberryPiPlatform drives a real peripheral. Three backends share it:
//
//   - "periph": bit-banged transmitter on periph.io registry pins;
//   - "rpio":   bit-banged transmitter on go-rpio memory-mapped pins, the
//     low-latency tier;
//   - "spi":    hardware SPI port for data and clock, GPIO latch.
type RaspberryPiPlatform struct {
	conf        *config.Config
	transmitter bus.Bus
	spiPort     spi.PortCloser
	rpioOpen    bool
	readyChan   chan bool
}

func NewRaspberryPiPlatform(conf *config.Config) *RaspberryPiPlatform {
	return &RaspberryPiPlatform{
		conf:      conf,
		readyChan: make(chan bool),
	}
}

func (s *RaspberryPiPlatform) Start() error {
	pins := s.conf.Hardware.Pins

	switch strings.ToLower(s.conf.Hardware.Backend) {
	case config.BackendPeriph:
		slog.Info("Initialising GPIO via periph.io...")
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("failed to init periph: %w", err)
		}
		latch, err := pin.ByNumber(pins.Latch)
		if err != nil {
			return err
		}
		data, err := pin.ByNumber(pins.Data)
		if err != nil {
			return err
		}
		clock, err := pin.ByNumber(pins.Clock)
		if err != nil {
			return err
		}
		tx := bus.NewTransmitter(latch, data, clock)
		tx.Init()
		s.transmitter = tx

	case config.BackendRpio:
		slog.Info("Initialising GPIO via go-rpio...")
		if err := rpio.Open(); err != nil {
			return fmt.Errorf("failed to open rpio: %w", err)
		}
		s.rpioOpen = true
		tx := bus.NewTransmitter(
			pin.MemPin(pins.Latch), pin.MemPin(pins.Data), pin.MemPin(pins.Clock))
		tx.Init()
		s.transmitter = tx

	case config.BackendSPI:
		slog.Info("Initialising hardware SPI...", "device", s.conf.Hardware.SPI.Device)
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("failed to init periph: %w", err)
		}
		port, err := spireg.Open(s.conf.Hardware.SPI.Device)
		if err != nil {
			return fmt.Errorf("failed to open spi: %w", err)
		}
		conn, err := port.Connect(
			physic.Frequency(s.conf.Hardware.SPI.Frequency)*physic.Hertz, spi.Mode0, 8)
		if err != nil {
			port.Close()
			return fmt.Errorf("failed to connect to spi device: %w", err)
		}
		latch, err := pin.ByNumber(pins.Latch)
		if err != nil {
			port.Close()
			return err
		}
		s.spiPort = port
		hw := bus.NewHardware(conn, latch)
		hw.Init()
		s.transmitter = hw

	default:
		return fmt.Errorf("unknown hardware backend: %q", s.conf.Hardware.Backend)
	}

	close(s.readyChan)
	return nil
}

func (s *RaspberryPiPlatform) Stop() {
	if s.transmitter != nil {
		s.transmitter.Close()
		s.transmitter = nil
	}
	if s.spiPort != nil {
		if err := s.spiPort.Close(); err != nil {
			slog.Error("Error closing spi port", "error", err)
		}
		s.spiPort = nil
	}
	if s.rpioOpen {
		if err := rpio.Close(); err != nil {
			slog.Error("Error closing rpio", "error", err)
		}
		s.rpioOpen = false
	}
}

func (s *RaspberryPiPlatform) Bus() bus.Bus {
	return s.transmitter
}

func (s *RaspberryPiPlatform) Ready() <-chan bool {
	return s.readyChan
}
