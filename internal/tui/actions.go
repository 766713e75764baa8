package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notes/pkg/core"
)

// actionFunc runs the service call behind a card control and returns the
// status line to show.
type actionFunc func(ctx context.Context, svc *core.Service, id string) (string, error)

// actions binds every immediate card control to its service call. Edit is
// not listed: it opens the form first.
var actions = map[core.ActionKind]actionFunc{
	core.ActionTogglePin: func(ctx context.Context, svc *core.Service, id string) (string, error) {
		found, err := svc.TogglePin(ctx, id)
		return outcome(found, err, "Pin toggled")
	},
	core.ActionTogglePriority: func(ctx context.Context, svc *core.Service, id string) (string, error) {
		found, err := svc.TogglePriority(ctx, id)
		return outcome(found, err, "Priority toggled")
	},
	core.ActionDelete: func(ctx context.Context, svc *core.Service, id string) (string, error) {
		deleted, err := svc.Delete(ctx, id)
		return outcome(deleted, err, "Note deleted")
	},
}

func outcome(done bool, err error, msg string) (string, error) {
	if err != nil {
		return "", err
	}
	if !done {
		return "Nothing changed", nil
	}
	return msg, nil
}

// statusMsg reports the result of a command to the status line.
type statusMsg struct {
	Text string
	Err  error
}

// dispatch returns the command running control c.
func dispatch(ctx context.Context, svc *core.Service, c core.Control) tea.Cmd {
	fn, ok := actions[c.Kind]
	if !ok {
		return func() tea.Msg {
			return statusMsg{Err: fmt.Errorf("no handler for %s", c.Kind)}
		}
	}
	return func() tea.Msg {
		text, err := fn(ctx, svc, c.NoteID)
		return statusMsg{Text: text, Err: err}
	}
}

// control finds the control of kind on card.
func control(card core.Card, kind core.ActionKind) (core.Control, bool) {
	for _, c := range card.Controls {
		if c.Kind == kind {
			return c, true
		}
	}
	return core.Control{}, false
}
