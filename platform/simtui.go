package platform

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/gammazero/deque"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	maxFrameHistory = 16
	simTitle        = " goshift - simulated 74HC595 "
)

// outputNames of a 74HC595, QA (bit 7 arrives first) down to QH.
var outputNames = []string{"QA", "QB", "QC", "QD", "QE", "QF", "QG", "QH"}

// simTUI renders the virtual peripheral: the current parallel output state
// and a short history of latched frames. Pressing 'q' or Ctrl-C asks the
// application to shut down via the ossignal channel.
type simTUI struct {
	app      *tview.Application
	view     *tview.TextView
	ossignal chan os.Signal

	mu      sync.Mutex
	history deque.Deque[Frame]
	outputs byte
	frames  int
}

func newSimTUI(ossignal chan os.Signal) *simTUI {
	return &simTUI{
		app:      tview.NewApplication(),
		view:     tview.NewTextView(),
		ossignal: ossignal,
	}
}

// run takes over the terminal and blocks until stop is called. It closes
// ready once the event loop is up.
func (st *simTUI) run(ready chan bool) error {
	st.view.SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetBorder(true).
		SetTitle(simTitle)

	st.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC ||
			(event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			st.ossignal <- syscall.SIGINT
			return nil
		}
		return event
	})

	st.redraw()
	close(ready)
	return st.app.SetRoot(st.view, true).Run()
}

func (st *simTUI) stop() {
	st.app.Stop()
}

// update records newly latched frames and refreshes the view.
func (st *simTUI) update(frames []Frame) {
	st.mu.Lock()
	for _, f := range frames {
		st.outputs = f.Outputs()
		st.frames++
		if st.history.Len() == maxFrameHistory {
			st.history.PopFront()
		}
		st.history.PushBack(f)
	}
	st.mu.Unlock()

	st.app.QueueUpdateDraw(st.redraw)
}

func (st *simTUI) redraw() {
	st.mu.Lock()
	defer st.mu.Unlock()

	var buf strings.Builder
	buf.WriteString("\n Outputs:  ")
	for i, name := range outputNames {
		// QA is the first bit shifted in, i.e. the MSB of the last byte.
		if st.outputs&(0x80>>i) != 0 {
			fmt.Fprintf(&buf, "[green]%s ●[-]  ", name)
		} else {
			fmt.Fprintf(&buf, "[gray]%s ○[-]  ", name)
		}
	}
	fmt.Fprintf(&buf, "\n\n Latched:  [yellow]0x%02X[-]   frames: %d\n", st.outputs, st.frames)

	buf.WriteString("\n Recent transactions:\n")
	for i := st.history.Len() - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, "   %s\n", st.history.At(i))
	}
	buf.WriteString("\n Press 'q' to quit.\n")

	st.view.SetText(buf.String())
}
