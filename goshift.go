// goshift is a demo application for the bus transmitters: it shifts byte
// patterns out to a 74HC595 shift register or a MAX7219 display controller,
// over either a bit-banged or a hardware SPI backend, or into a simulated
// peripheral rendered in the terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lautenbacher.net/goshift/bus"
	"lautenbacher.net/goshift/config"
	"lautenbacher.net/goshift/device"
	"lautenbacher.net/goshift/logging"
	"lautenbacher.net/goshift/platform"
	"lautenbacher.net/goshift/producer"
)

func main() {
	cfile := flag.String("config", "config.yml", "path to the config file")
	sim := flag.Bool("sim", false, "force the simulation backend")
	flag.Parse()

	conf, err := config.ReadConfig(*cfile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *sim {
		conf.Hardware.Backend = config.BackendSimulation
	}

	// The simulation TUI owns the terminal, so logs are buffered until it
	// is gone.
	isTUI := strings.EqualFold(conf.Hardware.Backend, config.BackendSimulation)
	if err := logging.Init(isTUI,
		conf.Logging.Level, conf.Logging.Format, conf.Logging.File); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logging.Close()

	ossignal := make(chan os.Signal, 1)
	signal.Notify(ossignal, os.Interrupt, syscall.SIGTERM)

	if err := run(conf, ossignal); err != nil {
		slog.Error("goshift failed", "error", err)
		logging.Close()
		os.Exit(1)
	}
}

func run(conf *config.Config, ossignal chan os.Signal) error {
	plat, err := platform.New(conf, ossignal)
	if err != nil {
		return err
	}
	if err := plat.Start(); err != nil {
		return err
	}
	defer plat.Stop()
	<-plat.Ready()

	slog.Info("Platform up",
		"backend", conf.Hardware.Backend, "peripheral", conf.Hardware.Peripheral)

	watcher, err := config.StartWatcher(conf)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	write, setIntensity, teardown := attachPeripheral(conf, plat.Bus())
	defer teardown()
	setIntensity(conf.Demo.Intensity)

	return runDemo(write, setIntensity, watcher, conf.Demo, ossignal)
}

// attachPeripheral initializes the configured device driver on the bus and
// returns the per-step write function, the intensity hook (a no-op for
// peripherals without one) and a teardown function.
func attachPeripheral(conf *config.Config, b bus.Bus) (func(byte), func(int), func()) {
	if strings.EqualFold(conf.Hardware.Peripheral, config.PeripheralMAX7219) {
		dev := device.NewMax7219[bus.Bus](b)
		dev.Init()
		// Show the pattern on the first matrix row.
		return func(v byte) { dev.SetRow(0, v) },
			func(level int) { dev.SetIntensity(level) },
			dev.Close
	}
	dev := device.NewShiftRegister[bus.Bus](b)
	dev.Init()
	return dev.Write, func(int) {}, dev.Close
}

// runDemo steps the configured pattern at the configured interval until an
// OS signal arrives, picking up runtime config changes as they happen.
func runDemo(write func(byte), setIntensity func(int),
	watcher *config.Watcher, demo config.DemoConfig, stop <-chan os.Signal) error {

	pat, err := producer.New(demo.Pattern)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(demo.Interval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-stop:
			slog.Info("Shutting down...", "signal", sig)
			return nil

		case <-watcher.Updates():
			next := watcher.Demo()
			if !strings.EqualFold(next.Pattern, demo.Pattern) {
				p, err := producer.New(next.Pattern)
				if err != nil {
					// Validation in the watcher should make this
					// unreachable.
					slog.Warn("Keeping current pattern", "error", err)
				} else {
					pat = p
				}
			}
			if next.Interval != demo.Interval {
				ticker.Reset(next.Interval)
			}
			if next.Intensity != demo.Intensity {
				setIntensity(next.Intensity)
			}
			demo = next

		case <-ticker.C:
			write(pat.Next())
		}
	}
}
