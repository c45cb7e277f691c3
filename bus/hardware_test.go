package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/spi"

	"lautenbacher.net/goshift/pin"
)

// fakeConn captures everything written to the SPI port. It also snapshots
// the latch pin state at transfer time so the tests can verify that bytes
// only ever go out inside an open frame.
type fakeConn struct {
	writes     [][]byte
	latch      *pin.RecorderPin
	latchAtTx  []pin.Level
	outputAtTx []bool
}

func (f *fakeConn) Tx(w, r []byte) error {
	cp := make([]byte, len(w))
	copy(cp, w)
	f.writes = append(f.writes, cp)
	if f.latch != nil {
		f.latchAtTx = append(f.latchAtTx, f.latch.Level())
		f.outputAtTx = append(f.outputAtTx, f.latch.IsOutput())
	}
	return nil
}

func (f *fakeConn) TxPackets(p []spi.Packet) error { return nil }
func (f *fakeConn) Duplex() conn.Duplex            { return conn.Half }
func (f *fakeConn) String() string                 { return "fakeconn" }

var _ spi.Conn = &fakeConn{}

func newFakeHardware() (Hardware[*pin.RecorderPin], *fakeConn, *pin.Trace) {
	trace := pin.NewTrace()
	latch := trace.Pin("latch")
	fc := &fakeConn{latch: latch}
	hw := NewHardware[*pin.RecorderPin](fc, latch)
	hw.Init()
	trace.Reset()
	return hw, fc, trace
}

func TestHardwareSendByte(t *testing.T) {
	hw, fc, trace := newFakeHardware()
	hw.SendByte(0x5A)

	require.Len(t, fc.writes, 1)
	assert.Equal(t, []byte{0x5A}, fc.writes[0])

	// Latch framing around the transfer.
	events := trace.Events()
	require.Len(t, events, 2)
	assert.Equal(t, pin.Event{Pin: "latch", Kind: pin.KindWrite, Level: pin.Low}, events[0])
	assert.Equal(t, pin.Event{Pin: "latch", Kind: pin.KindWrite, Level: pin.High}, events[1])
	assert.Equal(t, []pin.Level{pin.Low}, fc.latchAtTx, "byte left before the latch went low")
}

func TestHardwareSendWordHighByteFirst(t *testing.T) {
	hw, fc, _ := newFakeHardware()
	hw.SendWord(0x1234)

	// One Tx with both bytes, high byte first - a single frame, never two.
	require.Len(t, fc.writes, 1)
	assert.Equal(t, []byte{0x12, 0x34}, fc.writes[0])
	assert.Equal(t, []pin.Level{pin.Low}, fc.latchAtTx)
}

func TestHardwareSendWordBytesMatchesSendWord(t *testing.T) {
	one, oneConn, _ := newFakeHardware()
	one.SendWord(0xBEEF)

	two, twoConn, _ := newFakeHardware()
	two.SendWordBytes(0xBE, 0xEF)

	assert.Equal(t, oneConn.writes, twoConn.writes)
}

func TestHardwareInitClose(t *testing.T) {
	trace := pin.NewTrace()
	latch := trace.Pin("latch")
	hw := NewHardware[*pin.RecorderPin](&fakeConn{}, latch)

	hw.Init()
	assert.True(t, latch.IsOutput())

	hw.Close()
	assert.False(t, latch.IsOutput())

	// Safe to repeat.
	hw.Close()
	assert.False(t, latch.IsOutput())
}

func TestHardwareTransferInsideOpenFrame(t *testing.T) {
	hw, fc, _ := newFakeHardware()

	hw.BeginTransaction()
	hw.TransferByte(0x01)
	hw.TransferByte(0x02)
	hw.EndTransaction()

	// Two transfers, one frame: the latch stayed low for both.
	require.Len(t, fc.writes, 2)
	assert.Equal(t, []pin.Level{pin.Low, pin.Low}, fc.latchAtTx)
	assert.Equal(t, []bool{true, true}, fc.outputAtTx)
}
