package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lautenbacher.net/goshift/bus"
)

func TestMax7219InitSequence(t *testing.T) {
	log := &sendLog{}
	d := NewMax7219[bus.Bus](log)
	d.Init()

	require.Equal(t, 1, log.inits)
	// Display test off, no decode, full scan, 8 cleared rows, wake up.
	want := []uint16{
		0x0F00, 0x0900, 0x0B07,
		0x0100, 0x0200, 0x0300, 0x0400, 0x0500, 0x0600, 0x0700, 0x0800,
		0x0C01,
	}
	assert.Equal(t, want, log.sent)
}

func TestMax7219SetRow(t *testing.T) {
	log := &sendLog{}
	d := NewMax7219[bus.Bus](log)

	d.SetRow(0, 0xAA)
	d.SetRow(7, 0x01)
	assert.Equal(t, []uint16{0x01AA, 0x0801}, log.sent)

	// Out-of-range rows send nothing.
	d.SetRow(8, 0xFF)
	d.SetRow(-1, 0xFF)
	assert.Len(t, log.sent, 2)
}

func TestMax7219IntensityClamped(t *testing.T) {
	log := &sendLog{}
	d := NewMax7219[bus.Bus](log)

	d.SetIntensity(7)
	d.SetIntensity(99)
	d.SetIntensity(-4)
	assert.Equal(t, []uint16{0x0A07, 0x0A0F, 0x0A00}, log.sent)
}

func TestMax7219Close(t *testing.T) {
	log := &sendLog{}
	d := NewMax7219[bus.Bus](log)
	d.Init()
	log.sent = nil

	d.Close()
	assert.Equal(t, 1, log.closes)
	// Blank all rows, then shutdown.
	assert.Equal(t, []uint16{
		0x0100, 0x0200, 0x0300, 0x0400, 0x0500, 0x0600, 0x0700, 0x0800,
		0x0C00,
	}, log.sent)
}
