package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/gallery/internal/cache"
	"github.com/henri123lemoine/gallery/internal/compose"
)

// Message types for the bubbletea app.

// toastDuration is how long a toast stays in the status line.
const toastDuration = 2 * time.Second

// ToastExpiredMsg clears the toast it belongs to.
type ToastExpiredMsg struct {
	ID int
}

// SnapshotSavedMsg is sent when durable state has been written to disk.
type SnapshotSavedMsg struct {
	Path string
	Err  error
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func saveSnapshot(path string, snap compose.Snapshot) tea.Cmd {
	return func() tea.Msg {
		err := cache.SaveJSON(path, snap)
		return SnapshotSavedMsg{Path: path, Err: err}
	}
}

// toaster collects toasts raised by widgets during composition. It is
// shared by pointer so copies of Model see the same queue.
type toaster struct {
	pending []string
}

func (t *toaster) Toast(text string) {
	t.pending = append(t.pending, text)
}

func (t *toaster) drain() []string {
	out := t.pending
	t.pending = nil
	return out
}
