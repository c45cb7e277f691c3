package pin

import (
	"github.com/stianeikeland/go-rpio/v4"
)

// MemPin is the low-latency tier: a Broadcom GPIO number driven through
// go-rpio's memory-mapped registers. It is a concrete value type, so a
// bus.Transmitter[MemPin] compiles down to direct register stores per clock
// edge with no interface dispatch.
//
// rpio.Open must have been called before any method is used; the platform
// layer owns that lifecycle.
type MemPin rpio.Pin

func (p MemPin) Output() {
	rpio.Pin(p).Output()
}

func (p MemPin) Input() {
	rpio.Pin(p).Input()
}

func (p MemPin) Write(level Level) {
	if level == High {
		rpio.Pin(p).High()
	} else {
		rpio.Pin(p).Low()
	}
}
