// Package producer generates the byte patterns the demo application shifts
// out: each call to Next yields the next frame for the peripheral's 8
// outputs.
package producer

import (
	"fmt"
	"strings"
)

// Pattern produces a stream of output bytes, one per step.
type Pattern interface {
	Name() string
	Next() byte
	// Reset puts the pattern back to its starting state.
	Reset()
}

// New returns the pattern selected in the config.
func New(name string) (Pattern, error) {
	switch strings.ToLower(name) {
	case "counter":
		return &Counter{}, nil
	case "chaser":
		return NewChaser(), nil
	default:
		return nil, fmt.Errorf("unknown pattern: %q", name)
	}
}

// Counter counts through all 256 output states, a binary counter on the
// peripheral's outputs.
type Counter struct {
	v byte
}

func (c *Counter) Name() string { return "counter" }

func (c *Counter) Next() byte {
	v := c.v
	c.v++
	return v
}

func (c *Counter) Reset() { c.v = 0 }

// Chaser bounces a single lit output back and forth, Larson-scanner style.
type Chaser struct {
	pos int
	dir int
}

// NewChaser returns a chaser starting at output 0 moving up.
func NewChaser() *Chaser {
	return &Chaser{dir: 1}
}

func (c *Chaser) Name() string { return "chaser" }

func (c *Chaser) Next() byte {
	v := byte(1 << c.pos)
	if c.pos == 7 {
		c.dir = -1
	} else if c.pos == 0 {
		c.dir = 1
	}
	c.pos += c.dir
	return v
}

func (c *Chaser) Reset() {
	c.pos = 0
	c.dir = 1
}
