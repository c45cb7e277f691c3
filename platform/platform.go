// Package platform owns the hardware lifecycle around the bus transmitters:
// opening and closing the GPIO or SPI resources of the selected backend, and
// the TUI-based simulation used when no hardware is attached.
package platform

import (
	"fmt"
	"os"
	"strings"

	"lautenbacher.net/goshift/bus"
	"lautenbacher.net/goshift/config"
)

// Platform abstracts the real hardware from the simulation.
type Platform interface {
	// Start acquires the platform's resources (GPIO, SPI port, or the TUI)
	// and initializes the transmitter.
	Start() error

	// Stop releases the transmitter and all platform resources.
	Stop()

	// Bus returns the ready-to-use transmitter. Only valid between Start
	// and Stop.
	Bus() bus.Bus

	// Ready returns a channel that is closed once the platform is fully
	// operational (the TUI platform needs a moment to take over the
	// terminal).
	Ready() <-chan bool
}

// New creates the platform selected in the config. ossignal is used by the
// simulation TUI to request application shutdown.
func New(conf *config.Config, ossignal chan os.Signal) (Platform, error) {
	switch strings.ToLower(conf.Hardware.Backend) {
	case config.BackendPeriph, config.BackendRpio, config.BackendSPI:
		return NewRaspberryPiPlatform(conf), nil
	case config.BackendSimulation:
		return NewSimulationPlatform(conf, ossignal), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", conf.Hardware.Backend)
	}
}
