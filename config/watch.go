package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to the config file.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changed chan struct{}
	stop    chan struct{}
}

// NewWatcher watches the given config file and signals on Changed whenever
// it is written. The parent directory is watched so that editors which
// replace the file (rename-over) are caught too.
func NewWatcher(cfile string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(cfile)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changed: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	go w.run(abs)
	return w, nil
}

// Changed delivers one signal per batch of file modifications.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Stop ends the watch.
func (w *Watcher) Stop() {
	close(w.stop)
	w.fsw.Close()
}

func (w *Watcher) run(abs string) {
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("config file changed", "file", abs, "op", event.Op.String())
			select {
			case w.changed <- struct{}{}:
			default:
				// signal already pending
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}
