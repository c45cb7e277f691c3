package device

import (
	"lautenbacher.net/goshift/bus"
	"lautenbacher.net/goshift/util"
)

// MAX7219 register addresses. Every command is a 16-bit frame: register in
// the high byte, data in the low byte.
const (
	maxRegNoOp        byte = 0x00
	maxRegDigit0      byte = 0x01 // digits 0..7 are 0x01..0x08
	maxRegDecodeMode  byte = 0x09
	maxRegIntensity   byte = 0x0A
	maxRegScanLimit   byte = 0x0B
	maxRegShutdown    byte = 0x0C
	maxRegDisplayTest byte = 0x0F
)

// Max7219 drives a MAX7219 8-digit LED display controller (or an 8x8 matrix,
// which is electrically the same thing). All communication is 16-bit frames
// through SendWordBytes, one frame per transaction.
type Max7219[B bus.Bus] struct {
	bus B
}

// NewMax7219 returns a driver over the given bus.
func NewMax7219[B bus.Bus](b B) *Max7219[B] {
	return &Max7219[B]{bus: b}
}

// Init prepares the bus and brings the chip into a defined state: no BCD
// decoding, all 8 digits scanned, display test off, display cleared, chip
// out of shutdown.
func (d *Max7219[B]) Init() {
	d.bus.Init()
	d.WriteReg(maxRegDisplayTest, 0x00)
	d.WriteReg(maxRegDecodeMode, 0x00)
	d.WriteReg(maxRegScanLimit, 0x07)
	d.Clear()
	d.WriteReg(maxRegShutdown, 0x01)
}

// Close blanks the display, puts the chip into shutdown and releases the
// bus.
func (d *Max7219[B]) Close() {
	d.Clear()
	d.WriteReg(maxRegShutdown, 0x00)
	d.bus.Close()
}

// WriteReg sends one register/data frame.
func (d *Max7219[B]) WriteReg(reg, data byte) {
	d.bus.SendWordBytes(reg, data)
}

// SetRow sets the 8 segment bits of one digit row (0..7).
func (d *Max7219[B]) SetRow(row int, bits byte) {
	if row < 0 || row > 7 {
		return
	}
	d.WriteReg(maxRegDigit0+byte(row), bits)
}

// SetIntensity sets the display brightness, clamped to the chip's 0..15
// range.
func (d *Max7219[B]) SetIntensity(level int) {
	d.WriteReg(maxRegIntensity, byte(util.Clamp(level, 0, 15)))
}

// Clear blanks all 8 rows.
func (d *Max7219[B]) Clear() {
	for row := 0; row < 8; row++ {
		d.SetRow(row, 0)
	}
}
