package platform

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lautenbacher.net/goshift/config"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		Hardware: config.HardwareConfig{
			Backend:    backend,
			Peripheral: config.Peripheral74HC595,
			Pins:       config.PinConfig{Latch: 17, Data: 22, Clock: 23},
			SPI:        config.SPIConfig{Frequency: 2_000_000},
		},
	}
}

func TestNewSelectsPlatform(t *testing.T) {
	ossignal := make(chan os.Signal, 1)

	for _, backend := range []string{config.BackendPeriph, config.BackendRpio, config.BackendSPI} {
		plat, err := New(testConfig(backend), ossignal)
		require.NoError(t, err, backend)
		assert.IsType(t, &RaspberryPiPlatform{}, plat, backend)
	}

	plat, err := New(testConfig(config.BackendSimulation), ossignal)
	require.NoError(t, err)
	assert.IsType(t, &SimulationPlatform{}, plat)

	_, err = New(testConfig("uart"), ossignal)
	assert.Error(t, err)
}

func TestRaspberryPiPlatformRejectsUnknownBackend(t *testing.T) {
	// Start validates the backend again; a platform constructed directly
	// with a bogus config must not get past it.
	plat := NewRaspberryPiPlatform(testConfig("bogus"))
	assert.Error(t, plat.Start())
}
