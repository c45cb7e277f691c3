// Package device contains drivers for the peripherals the bus transmitters
// were built for. The drivers are generic over bus.Bus, so the transmitter
// is embedded by value and a concrete instantiation carries no interface
// indirection on the transmit path.
package device

import (
	"lautenbacher.net/goshift/bus"
	"lautenbacher.net/goshift/pin"
)

// ShiftRegister drives a single 74HC595: 8 serial bits in, 8 parallel
// outputs QA..QH out. Each update is one byte in one transaction; the rising
// latch edge moves the shifted bits into the output stage.
type ShiftRegister[B bus.Bus] struct {
	bus B

	// last holds the byte currently latched on the outputs. The sentinel
	// value above 0xFF forces the first write to go out even if it is 0.
	last uint16
}

// NewShiftRegister returns a driver over the given bus.
func NewShiftRegister[B bus.Bus](b B) *ShiftRegister[B] {
	return &ShiftRegister[B]{bus: b, last: 1 << 9}
}

// Init prepares the bus and drives all outputs low.
func (d *ShiftRegister[B]) Init() {
	d.bus.Init()
	d.Write(0)
}

// Close drives the outputs low and releases the bus.
func (d *ShiftRegister[B]) Close() {
	d.Write(0)
	d.bus.Close()
}

// Write latches v onto the parallel outputs. Unchanged values are not
// re-transmitted.
func (d *ShiftRegister[B]) Write(v byte) {
	if d.last == uint16(v) {
		return
	}
	d.bus.SendByte(v)
	d.last = uint16(v)
}

// SetOutputs changes only the outputs selected by mask to the corresponding
// bits of value, leaving the rest as they are.
func (d *ShiftRegister[B]) SetOutputs(value, mask byte) {
	cur := byte(d.last)
	d.Write(cur&^mask | value&mask)
}

// SetPin drives a single output QA..QH (n = 0..7).
func (d *ShiftRegister[B]) SetPin(n int, level pin.Level) {
	if n < 0 || n > 7 {
		return
	}
	if level == pin.High {
		d.SetOutputs(1<<n, 1<<n)
	} else {
		d.SetOutputs(0, 1<<n)
	}
}

// Value returns the byte currently latched on the outputs.
func (d *ShiftRegister[B]) Value() byte {
	return byte(d.last)
}
