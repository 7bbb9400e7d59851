package tui

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// debounce groups bursts of events (editors write, rename and chmod in a row)
const debounce = 200 * time.Millisecond

// dirChangedMsg reports that the watched directory changed
type dirChangedMsg struct{}

// watchErrMsg reports a watcher failure; the TUI keeps running without refresh
type watchErrMsg struct {
	err error
}

// Watcher turns changes to a directory into tea messages
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher starts watching dir (not recursively)
func NewWatcher(dir string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	logger.Debug("directory watcher started", "dir", dir)
	return &Watcher{watcher: w, logger: logger}, nil
}

// Wait blocks until a relevant change settles, then reports it. Returning
// nil ends the watch.
func (w *Watcher) Wait() tea.Msg {
	var timer <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("directory changed", "file", event.Name, "op", event.Op.String())
			timer = time.After(debounce)

		case <-timer:
			return dirChangedMsg{}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("directory watcher error", "error", err)
			return watchErrMsg{err}
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
