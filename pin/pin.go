// Package pin abstracts the handful of digital GPIO operations the
// transmitters in package bus need: configure a pin as output or input, and
// drive it high or low. Implementations exist for periph.io registry pins,
// for go-rpio memory-mapped pins, and for a recording test double.
//
// The Pin interface is deliberately tiny so that bus.Transmitter can be
// instantiated with a concrete pin type and the compiler can devirtualize
// every edge on the transmit path.
package pin

// Level is the logic level of a digital pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Pin is a single digital GPIO line. Output and Input configure the pin
// direction; Write drives the line while the pin is an output. Writing to a
// pin that is configured as input leaves the line floating - real hardware
// cannot report this, so implementations silently ignore it.
type Pin interface {
	Output()
	Input()
	Write(level Level)
}
