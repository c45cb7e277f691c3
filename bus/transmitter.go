// Package bus implements write-only SPI mode-0 transmitters for peripherals
// like the 74HC595 shift register or the MAX7219 display controller: a
// bit-banged software transmitter that works on any three GPIO lines, and a
// wrapper for a hardware SPI port.
//
// Both share one operation set, the Bus interface, and both are small value
// types meant to be embedded directly inside the device driver that owns
// them. Implementation selection happens at compile time: Transmitter is
// generic over the concrete pin type, so instantiating it with pin.MemPin
// yields direct register stores per clock edge, while pin.PeriphPin trades
// one indirection per edge for portability to any periph.io host.
package bus

import (
	"lautenbacher.net/goshift/pin"
)

// Bus is the operation set shared by all transmitters. Code that drives a
// peripheral is written once against Bus; which transmitter (and which pin
// tier) backs it is decided where the value is constructed.
type Bus interface {
	// Init configures the bus lines for transmitting. Must be called before
	// any transfer; calling it again is harmless.
	Init()
	// Close releases the bus lines back to inputs. The bus must not be used
	// again until Init is called.
	Close()
	// BeginTransaction pulls the latch line low, opening a frame. Each
	// BeginTransaction must be paired with exactly one EndTransaction
	// before the next frame is opened.
	BeginTransaction()
	// EndTransaction pulls the latch line high, committing the frame into
	// the peripheral's output stage.
	EndTransaction()
	// TransferByte shifts out 8 bits, MSB first, without touching the
	// latch. Only valid inside an open transaction.
	TransferByte(v byte)
	// TransferWord shifts out 16 bits as high byte then low byte.
	TransferWord(v uint16)
	// SendByte transmits one byte in its own transaction.
	SendByte(v byte)
	// SendWord transmits one 16-bit word in its own transaction.
	SendWord(v uint16)
	// SendWordBytes is SendWord with the two halves passed separately.
	SendWordBytes(msb, lsb byte)
}

// Transmitter emulates a write-only SPI mode-0 master on three GPIO lines:
// latch (chip select), data (MOSI) and clock (SCK). Bits go out MSB first;
// the peripheral samples data on the rising clock edge.
//
// A Transmitter is a pure value: constructing one touches no hardware, and
// copying it is fine. It holds no state besides the pin assignment, so there
// is nothing to synchronize - but the three pins belong to this transmitter
// alone, and transactions on one instance must be strictly sequential.
// Calling TransferByte or TransferWord outside an open transaction, or
// nesting transactions, is not checked and leaves the peripheral in an
// undefined state.
//
// There is no pacing: each bit takes whatever the host's instruction timing
// yields. Peripherals in the 74HC595/MAX7219 class are far faster than any
// GPIO host can toggle, so no delay is needed.
type Transmitter[P pin.Pin] struct {
	Latch P
	Data  P
	Clock P
}

// NewTransmitter returns a transmitter over the given latch, data and clock
// pins. No hardware is touched until Init.
func NewTransmitter[P pin.Pin](latch, data, clock P) Transmitter[P] {
	return Transmitter[P]{Latch: latch, Data: data, Clock: clock}
}

// Init configures all three pins as outputs. Idempotent.
func (t Transmitter[P]) Init() {
	t.Latch.Output()
	t.Data.Output()
	t.Clock.Output()
}

// Close releases all three pins back to inputs, giving up the bus. Safe to
// call more than once.
func (t Transmitter[P]) Close() {
	t.Latch.Input()
	t.Data.Input()
	t.Clock.Input()
}

// BeginTransaction opens a frame by pulling the latch low.
func (t Transmitter[P]) BeginTransaction() {
	t.Latch.Write(pin.Low)
}

// EndTransaction closes the frame; the rising latch edge makes the
// peripheral take over the shifted-in bits.
func (t Transmitter[P]) EndTransaction() {
	t.Latch.Write(pin.High)
}

// TransferByte shifts the 8 bits of v onto the data and clock lines, most
// significant bit first: clock low, data set to the bit, clock high. The
// latch is not touched.
func (t Transmitter[P]) TransferByte(v byte) {
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		t.Clock.Write(pin.Low)
		t.Data.Write(pin.Level(v&mask != 0))
		t.Clock.Write(pin.High)
	}
}

// TransferWord shifts out 16 bits, high byte first.
func (t Transmitter[P]) TransferWord(v uint16) {
	t.TransferByte(byte(v >> 8))
	t.TransferByte(byte(v))
}

// SendByte transmits v framed by a single latch pulse.
func (t Transmitter[P]) SendByte(v byte) {
	t.BeginTransaction()
	t.TransferByte(v)
	t.EndTransaction()
}

// SendWord transmits v framed by a single latch pulse.
func (t Transmitter[P]) SendWord(v uint16) {
	t.BeginTransaction()
	t.TransferWord(v)
	t.EndTransaction()
}

// SendWordBytes transmits msb then lsb in one transaction. Equivalent to
// SendWord(uint16(msb)<<8 | uint16(lsb)).
func (t Transmitter[P]) SendWordBytes(msb, lsb byte) {
	t.BeginTransaction()
	t.TransferByte(msb)
	t.TransferByte(lsb)
	t.EndTransaction()
}
