package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordsInOrderAcrossPins(t *testing.T) {
	trace := NewTrace()
	a := trace.Pin("a")
	b := trace.Pin("b")

	a.Output()
	b.Output()
	a.Write(High)
	b.Write(Low)
	a.Write(Low)

	assert.Equal(t, []Event{
		{Pin: "a", Kind: KindOutput},
		{Pin: "b", Kind: KindOutput},
		{Pin: "a", Kind: KindWrite, Level: High},
		{Pin: "b", Kind: KindWrite, Level: Low},
		{Pin: "a", Kind: KindWrite, Level: Low},
	}, trace.Events())
}

func TestWritesToInputPinDriveNothing(t *testing.T) {
	trace := NewTrace()
	p := trace.Pin("p")

	// Fresh pins are inputs, like a GPIO after reset.
	assert.False(t, p.IsOutput())
	p.Write(High)
	assert.Zero(t, trace.Len())

	p.Output()
	p.Write(High)
	assert.Equal(t, High, p.Level())

	p.Input()
	trace.Reset()
	p.Write(Low)
	assert.Zero(t, trace.Len())
	// The last driven level is remembered, not the ignored write.
	assert.Equal(t, High, p.Level())
}

func TestDrainConsumesEvents(t *testing.T) {
	trace := NewTrace()
	p := trace.Pin("p")
	p.Output()
	p.Write(High)

	events := trace.Drain()
	require.Len(t, events, 2)
	assert.Zero(t, trace.Len())

	// Later events accumulate fresh.
	p.Write(Low)
	assert.Equal(t, []Event{{Pin: "p", Kind: KindWrite, Level: Low}}, trace.Drain())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "clk:output", Event{Pin: "clk", Kind: KindOutput}.String())
	assert.Equal(t, "clk:input", Event{Pin: "clk", Kind: KindInput}.String())
	assert.Equal(t, "clk:high", Event{Pin: "clk", Kind: KindWrite, Level: High}.String())
	assert.Equal(t, "clk:low", Event{Pin: "clk", Kind: KindWrite, Level: Low}.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "low", Low.String())
}
