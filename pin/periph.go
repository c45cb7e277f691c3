package pin

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// PeriphPin adapts a periph.io gpio.PinIO to the Pin interface. This is the
// portable tier: the pin is resolved by name from the periph registry and
// every write goes through the gpio.PinIO interface, so it works on any host
// periph supports. periph's host driver must have been initialized (via
// host.Init) before any method is called.
type PeriphPin struct {
	p gpio.PinIO
}

// ByName looks up a pin in the periph registry, e.g. "GPIO17".
func ByName(name string) (PeriphPin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return PeriphPin{}, fmt.Errorf("pin: no pin named %q in periph registry", name)
	}
	return PeriphPin{p: p}, nil
}

// ByNumber looks up a Broadcom GPIO number in the periph registry.
func ByNumber(num int) (PeriphPin, error) {
	return ByName(fmt.Sprintf("GPIO%d", num))
}

func (p PeriphPin) Output() {
	// periph sets the direction on the first Out call; start low, the idle
	// state for clock and data in mode-0.
	p.p.Out(gpio.Low)
}

func (p PeriphPin) Input() {
	p.p.In(gpio.PullNoChange, gpio.NoEdge)
}

func (p PeriphPin) Write(level Level) {
	p.p.Out(gpio.Level(level))
}

func (p PeriphPin) String() string {
	return p.p.Name()
}
