package ui

import (
	"github.com/fsnotify/fsnotify"

	tea "github.com/charmbracelet/bubbletea"
)

// memoryWatcher bridges fsnotify events on the memory directory into
// bubbletea messages so the sidebar stays current while files are added
// or removed between runs.
type memoryWatcher struct {
	w *fsnotify.Watcher
}

// newMemoryWatcher attaches to root. Watching is best-effort: on any
// failure the TUI simply runs without live refresh.
func newMemoryWatcher(root string) *memoryWatcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil
	}
	return &memoryWatcher{w: w}
}

// wait blocks until the next filesystem event and reports it as a
// memChangedMsg. Watcher errors end the refresh loop quietly.
func (mw *memoryWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-mw.w.Events:
			if !ok {
				return nil
			}
			return memChangedMsg{}
		case _, ok := <-mw.w.Errors:
			if !ok {
				return nil
			}
			return memChangedMsg{}
		}
	}
}

func (mw *memoryWatcher) close() {
	_ = mw.w.Close()
}
