package bus

import (
	"fmt"

	"periph.io/x/conn/v3/spi"

	"lautenbacher.net/goshift/pin"
)

// Compile-time check that both transmitters share the Bus operation set.
var (
	_ Bus = Transmitter[pin.MemPin]{}
	_ Bus = Hardware[pin.MemPin]{}
)

// Hardware is the hardware-SPI counterpart of Transmitter: data and clock
// are handled by an SPI port (opened and configured by the platform layer,
// mode-0, MSB first, 8 bit words), only the latch is still a directly driven
// GPIO. Like Transmitter it is generic over the latch pin type, so a
// Hardware[pin.MemPin] pulses the latch through memory-mapped registers.
//
// The spi.Conn transfer can fail where a GPIO write cannot. A failing Tx on
// an already connected port means the bus configuration is broken beyond
// what a caller could handle mid-frame, so Hardware treats it as fatal,
// matching the infallible transmit path of Transmitter.
type Hardware[P pin.Pin] struct {
	Conn  spi.Conn
	Latch P
}

// NewHardware returns a hardware transmitter over an already connected SPI
// port and a latch pin.
func NewHardware[P pin.Pin](conn spi.Conn, latch P) Hardware[P] {
	return Hardware[P]{Conn: conn, Latch: latch}
}

// Init configures the latch pin as an output. The SPI port itself was
// configured when it was connected. Idempotent.
func (h Hardware[P]) Init() {
	h.Latch.Output()
}

// Close releases the latch pin. Closing the SPI port is the job of whoever
// opened it.
func (h Hardware[P]) Close() {
	h.Latch.Input()
}

// BeginTransaction opens a frame by pulling the latch low.
func (h Hardware[P]) BeginTransaction() {
	h.Latch.Write(pin.Low)
}

// EndTransaction closes the frame with the rising latch edge.
func (h Hardware[P]) EndTransaction() {
	h.Latch.Write(pin.High)
}

// TransferByte clocks out one byte on the SPI port.
func (h Hardware[P]) TransferByte(v byte) {
	h.tx([]byte{v})
}

// TransferWord clocks out 16 bits, high byte first.
func (h Hardware[P]) TransferWord(v uint16) {
	h.tx([]byte{byte(v >> 8), byte(v)})
}

// SendByte transmits v framed by a single latch pulse.
func (h Hardware[P]) SendByte(v byte) {
	h.BeginTransaction()
	h.TransferByte(v)
	h.EndTransaction()
}

// SendWord transmits v framed by a single latch pulse.
func (h Hardware[P]) SendWord(v uint16) {
	h.BeginTransaction()
	h.TransferWord(v)
	h.EndTransaction()
}

// SendWordBytes transmits msb then lsb in one transaction.
func (h Hardware[P]) SendWordBytes(msb, lsb byte) {
	h.SendWord(uint16(msb)<<8 | uint16(lsb))
}

func (h Hardware[P]) tx(w []byte) {
	if err := h.Conn.Tx(w, nil); err != nil {
		panic(fmt.Sprintf("bus: spi write failed: %v", err))
	}
}
