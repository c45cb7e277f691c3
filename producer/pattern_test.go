package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsByName(t *testing.T) {
	p, err := New("Counter")
	require.NoError(t, err)
	assert.Equal(t, "counter", p.Name())

	p, err = New("chaser")
	require.NoError(t, err)
	assert.Equal(t, "chaser", p.Name())

	_, err = New("strobe")
	assert.Error(t, err)
}

func TestCounterWrapsAround(t *testing.T) {
	c := &Counter{}
	for i := 0; i < 256; i++ {
		assert.Equal(t, byte(i), c.Next())
	}
	// Wraps back to zero after 256 steps.
	assert.Equal(t, byte(0), c.Next())

	c.Reset()
	assert.Equal(t, byte(0), c.Next())
}

func TestChaserBounces(t *testing.T) {
	c := NewChaser()

	var got []byte
	for i := 0; i < 15; i++ {
		got = append(got, c.Next())
	}
	// Up from bit 0 to bit 7 and back down, without repeating the
	// endpoints.
	want := []byte{
		0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80,
		0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01,
	}
	assert.Equal(t, want, got)

	// One full period later the cycle repeats.
	assert.Equal(t, byte(0x02), c.Next())
}

func TestChaserReset(t *testing.T) {
	c := NewChaser()
	for i := 0; i < 5; i++ {
		c.Next()
	}
	c.Reset()
	assert.Equal(t, byte(0x01), c.Next())
}
