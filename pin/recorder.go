package pin

import (
	"fmt"
	"sync"

	"github.com/gammazero/deque"
)

// Kind classifies a recorded pin event.
type Kind int

const (
	KindOutput Kind = iota // pin configured as output
	KindInput              // pin released to input
	KindWrite              // level driven while output
)

// Event is one recorded operation on a RecorderPin.
type Event struct {
	Pin   string
	Kind  Kind
	Level Level // meaningful for KindWrite only
}

func (e Event) String() string {
	switch e.Kind {
	case KindOutput:
		return fmt.Sprintf("%s:output", e.Pin)
	case KindInput:
		return fmt.Sprintf("%s:input", e.Pin)
	default:
		return fmt.Sprintf("%s:%s", e.Pin, e.Level)
	}
}

// Trace collects the interleaved event stream of a set of RecorderPins, in
// the exact order the operations happened. It is the capture surface for the
// transmit-path tests and for the simulation platform's virtual peripheral.
type Trace struct {
	mu     sync.Mutex
	events deque.Deque[Event]
}

// NewTrace creates an empty Trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Pin creates a RecorderPin that records into this trace under the given
// label. The pin starts in input mode, like a GPIO after reset.
func (t *Trace) Pin(label string) *RecorderPin {
	return &RecorderPin{trace: t, label: label}
}

func (t *Trace) record(e Event) {
	t.mu.Lock()
	t.events.PushBack(e)
	t.mu.Unlock()
}

// Events returns a snapshot of all recorded events in order.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.events.Len())
	for i := range out {
		out[i] = t.events.At(i)
	}
	return out
}

// Drain removes and returns all recorded events. Used by the simulation
// decoder, which consumes the stream incrementally.
func (t *Trace) Drain() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.events.Len())
	for i := range out {
		out[i] = t.events.PopFront()
	}
	return out
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.events.Len()
}

// Reset discards all recorded events.
func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events.Clear()
}

// RecorderPin is a Pin double that records every operation into its Trace.
// Writes while the pin is in input mode drive nothing and record nothing,
// mirroring what a real GPIO line does after it has been released.
type RecorderPin struct {
	trace  *Trace
	label  string
	output bool
	level  Level
}

func (p *RecorderPin) Output() {
	p.output = true
	p.trace.record(Event{Pin: p.label, Kind: KindOutput})
}

func (p *RecorderPin) Input() {
	p.output = false
	p.trace.record(Event{Pin: p.label, Kind: KindInput})
}

func (p *RecorderPin) Write(level Level) {
	if !p.output {
		return
	}
	p.level = level
	p.trace.record(Event{Pin: p.label, Kind: KindWrite, Level: level})
}

// IsOutput reports whether the pin is currently configured as an output.
func (p *RecorderPin) IsOutput() bool {
	return p.output
}

// Level returns the last level driven on the pin.
func (p *RecorderPin) Level() Level {
	return p.level
}
