package platform

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"lautenbacher.net/goshift/bus"
	"lautenbacher.net/goshift/config"
	"lautenbacher.net/goshift/pin"
)

// How often the simulation drains the recorded trace into the virtual
// peripheral.
const simPollInterval = 25 * time.Millisecond

// SimulationPlatform runs the transmitter against recorder pins and shows
// the virtual 74HC595 in a terminal UI. It makes the whole byte path
// testable and demoable on any machine without touching GPIO.
type SimulationPlatform struct {
	conf        *config.Config
	trace       *pin.Trace
	transmitter bus.Bus
	sim         *ShiftRegisterSim
	tui         *simTUI
	stopChan    chan struct{}
	wg          sync.WaitGroup
	readyChan   chan bool
}

func NewSimulationPlatform(conf *config.Config, ossignal chan os.Signal) *SimulationPlatform {
	return &SimulationPlatform{
		conf:      conf,
		trace:     pin.NewTrace(),
		sim:       NewShiftRegisterSim("latch", "data", "clock"),
		tui:       newSimTUI(ossignal),
		stopChan:  make(chan struct{}),
		readyChan: make(chan bool),
	}
}

func (s *SimulationPlatform) Start() error {
	tx := bus.NewTransmitter(
		s.trace.Pin("latch"), s.trace.Pin("data"), s.trace.Pin("clock"))
	tx.Init()
	s.transmitter = tx

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.tui.run(s.readyChan); err != nil {
			slog.Error("Simulation TUI failed", "error", err)
		}
	}()

	s.wg.Add(1)
	go s.pollTrace()
	return nil
}

func (s *SimulationPlatform) Stop() {
	close(s.stopChan)
	s.tui.stop()
	s.wg.Wait()
	if s.transmitter != nil {
		s.transmitter.Close()
		s.transmitter = nil
	}
}

func (s *SimulationPlatform) Bus() bus.Bus {
	return s.transmitter
}

func (s *SimulationPlatform) Ready() <-chan bool {
	return s.readyChan
}

// pollTrace periodically feeds the recorded edges to the virtual peripheral
// and pushes completed frames to the TUI.
func (s *SimulationPlatform) pollTrace() {
	defer s.wg.Done()
	ticker := time.NewTicker(simPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			slog.Info("Ending simulation trace poller go-routine...")
			return
		case <-ticker.C:
			frames := s.sim.Feed(s.trace.Drain())
			if len(frames) > 0 {
				s.tui.update(frames)
			}
		}
	}
}
