package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	watchsource "github.com/aretw0/notes/pkg/adapters/lifecycle"
	"github.com/aretw0/notes/pkg/core"
)

// Run starts the full-screen UI and blocks until the user quits or ctx
// ends. When the storage is watchable, changes made by other processes are
// picked up live.
func Run(ctx context.Context, svc *core.Service, opts Options) error {
	m := New(ctx, svc, opts)

	if events, err := svc.Watch(ctx); err == nil {
		src := watchsource.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		m.events = src.Events()
	} else {
		m.logger.Debug("live refresh disabled", "reason", err)
	}

	opts.Host.ApplyTheme()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui failed: %w", err)
	}
	return nil
}
