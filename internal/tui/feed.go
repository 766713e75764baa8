package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notes/pkg/core"
)

// viewMsg carries a recomputed view into the update loop.
type viewMsg struct {
	View core.View
}

// viewFeed is the service Renderer of the UI. The service renders from
// command goroutines; the feed keeps the latest view and wakes the one
// command waiting for it.
type viewFeed struct {
	mu     sync.Mutex
	latest core.View
	ready  chan struct{}
}

func newViewFeed() *viewFeed {
	return &viewFeed{ready: make(chan struct{}, 1)}
}

// Render implements core.Renderer.
func (f *viewFeed) Render(_ context.Context, v core.View) {
	f.mu.Lock()
	f.latest = v
	f.mu.Unlock()

	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// wait blocks until a view was rendered since the last wait.
func (f *viewFeed) wait() tea.Cmd {
	return func() tea.Msg {
		<-f.ready
		f.mu.Lock()
		defer f.mu.Unlock()
		return viewMsg{View: f.latest}
	}
}

var _ core.Renderer = (*viewFeed)(nil)
