package platform

import (
	"fmt"
	"strings"

	"lautenbacher.net/goshift/pin"
)

// Frame is one latched transaction as seen by the simulated peripheral: the
// bits clocked in between latch-low and latch-high, grouped MSB-first into
// bytes.
type Frame struct {
	Bytes []byte
	Bits  int
}

func (f Frame) String() string {
	var b strings.Builder
	for i, v := range f.Bytes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "0x%02X", v)
	}
	fmt.Fprintf(&b, " (%d bits)", f.Bits)
	return b.String()
}

// ShiftRegisterSim replays a recorded pin trace the way a 74HC595 chain
// would see it: data is sampled on every rising clock edge, and the rising
// latch edge commits everything shifted in since the falling latch edge.
// It is fed incrementally from the trace drain, so partial transactions
// carry over between calls.
type ShiftRegisterSim struct {
	latchLabel string
	dataLabel  string
	clockLabel string

	latch pin.Level
	data  pin.Level
	clock pin.Level
	bits  []pin.Level
}

// NewShiftRegisterSim creates a simulator listening to the three given pin
// labels. The latch idles high, the other lines low, like the real bus
// between transactions.
func NewShiftRegisterSim(latchLabel, dataLabel, clockLabel string) *ShiftRegisterSim {
	return &ShiftRegisterSim{
		latchLabel: latchLabel,
		dataLabel:  dataLabel,
		clockLabel: clockLabel,
		latch:      pin.High,
	}
}

// Feed consumes the next chunk of trace events and returns the frames
// completed by them, in order.
func (s *ShiftRegisterSim) Feed(events []pin.Event) []Frame {
	var frames []Frame
	for _, e := range events {
		if e.Kind != pin.KindWrite {
			continue
		}
		switch e.Pin {
		case s.dataLabel:
			s.data = e.Level
		case s.clockLabel:
			if e.Level == pin.High && s.clock == pin.Low {
				s.bits = append(s.bits, s.data)
			}
			s.clock = e.Level
		case s.latchLabel:
			if e.Level == pin.High && s.latch == pin.Low {
				frames = append(frames, s.commit())
			} else if e.Level == pin.Low && s.latch == pin.High {
				s.bits = s.bits[:0]
			}
			s.latch = e.Level
		}
	}
	return frames
}

func (s *ShiftRegisterSim) commit() Frame {
	f := Frame{Bits: len(s.bits)}
	// Group MSB-first; stray bits that don't fill a byte stay at the tail,
	// padded low, the way a short shift leaves the register.
	for i := 0; i < len(s.bits); i += 8 {
		var v byte
		for j := 0; j < 8; j++ {
			v <<= 1
			if i+j < len(s.bits) && s.bits[i+j] == pin.High {
				v |= 1
			}
		}
		f.Bytes = append(f.Bytes, v)
	}
	s.bits = s.bits[:0]
	return f
}

// Outputs returns the parallel output state of the last chip in the chain
// for a frame: its final byte.
func (f Frame) Outputs() byte {
	if len(f.Bytes) == 0 {
		return 0
	}
	return f.Bytes[len(f.Bytes)-1]
}
