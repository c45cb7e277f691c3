package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"lautenbacher.net/goshift/util"
)

// Watcher re-reads the config file whenever it changes on disk and publishes
// the validated Demo section through an AtomicEvent. Only the runtime-tunable
// subset is propagated; changing the hardware section requires a restart.
type Watcher struct {
	demo     *util.AtomicEvent[DemoConfig]
	fswatch  *fsnotify.Watcher
	cfile    string
	stopChan chan struct{}
}

// StartWatcher begins watching the file the given config was read from.
func StartWatcher(conf *Config) (*Watcher, error) {
	fswatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors replace the file on save
	// and the watch on the old inode would go stale.
	if err := fswatch.Add(filepath.Dir(conf.Configfile)); err != nil {
		fswatch.Close()
		return nil, err
	}

	w := &Watcher{
		demo:     util.NewAtomicEvent(conf.Demo),
		fswatch:  fswatch,
		cfile:    conf.Configfile,
		stopChan: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates returns the notification channel; after each receive, Demo holds
// the latest valid runtime settings.
func (w *Watcher) Updates() <-chan struct{} {
	return w.demo.Channel()
}

// Demo returns the most recent valid runtime settings.
func (w *Watcher) Demo() DemoConfig {
	return w.demo.Value()
}

// Stop ends the watch goroutine and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
	w.fswatch.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fswatch.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.cfile) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fswatch.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	conf, err := ReadConfig(w.cfile)
	if err != nil {
		// Keep running with the previous settings; a half-saved file is
		// expected during editing.
		slog.Warn("Ignoring invalid config change", "error", err)
		return
	}
	slog.Info("Runtime config reloaded",
		"pattern", conf.Demo.Pattern, "interval", conf.Demo.Interval)
	w.demo.Send(conf.Demo)
}
