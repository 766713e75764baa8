// Package tui is the interactive terminal surface of the notes widget.
//
// The model never mutates notes itself: every user action becomes a command
// calling core.Service, and the service pushes the recomputed view back
// through a viewFeed renderer.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notes/internal/host"
	"github.com/aretw0/notes/pkg/core"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
)

const (
	focusTitle = iota
	focusText
)

// Options configures the model.
type Options struct {
	Logger *slog.Logger
	Host   *host.Host
	// Events, when set, triggers a refresh on every storage change.
	Events <-chan lifecycle.Event
	// Clipboard replaces clipboard.WriteAll (tests).
	Clipboard func(string) error
}

// confirmation is a pending destructive action.
type confirmation struct {
	prompt string
	run    func(ctx context.Context) tea.Cmd
}

// storageEventMsg reports a change of the storage key.
type storageEventMsg struct {
	Event string
}

// Model is the bubbletea model of the notes screen.
type Model struct {
	ctx    context.Context
	svc    *core.Service
	feed   *viewFeed
	keys   keyMap
	logger *slog.Logger
	host   *host.Host
	events <-chan lifecycle.Event
	copy   func(string) error

	view   core.View
	cursor int
	mode   mode
	width  int
	height int

	search textinput.Model
	title  textinput.Model
	text   textinput.Model
	focus  int
	editID string // empty when the form creates a note

	confirm *confirmation

	status    string
	statusErr bool
}

// New creates the model and attaches it as the service renderer.
func New(ctx context.Context, svc *core.Service, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	search := textinput.New()
	search.Prompt = "🔍 "
	search.Placeholder = "Search notes..."

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title (optional)"
	title.CharLimit = 120

	text := textinput.New()
	text.Prompt = ""
	text.Placeholder = "Write a note..."

	m := &Model{
		ctx:    ctx,
		svc:    svc,
		feed:   newViewFeed(),
		keys:   defaultKeyMap(),
		logger: opts.Logger,
		host:   opts.Host,
		events: opts.Events,
		copy:   opts.Clipboard,
		width:  80,
		height: 24,
		search: search,
		title:  title,
		text:   text,
	}
	svc.SetRenderer(m.feed)
	return m
}

// Init loads the notes and starts listening for views and storage events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.feed.wait(), m.refresh(), m.waitEvent(), m.ready())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(10, msg.Width-8)
		m.title.Width = max(10, msg.Width-12)
		m.text.Width = max(10, msg.Width-12)
		return m, nil

	case viewMsg:
		m.view = msg.View
		m.clampCursor()
		return m, m.feed.wait()

	case statusMsg:
		m.setStatus(msg.Text, msg.Err)
		return m, nil

	case storageEventMsg:
		m.logger.Debug("storage changed", "event", msg.Event)
		return m, tea.Batch(m.refresh(), m.waitEvent())

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.handleSearchKey(msg)
		case modeForm:
			return m.handleFormKey(msg)
		case modeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleKey(msg)
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Cards)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.New):
		return m, m.openForm("", "", "")

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Sort):
		current, _ := core.ParseSortMode(string(m.view.Query.Sort))
		next := current.Next()
		return m, m.call(func(ctx context.Context) (string, error) {
			return "Sort: " + next.Label(), m.svc.SetSort(ctx, next)
		})

	case key.Matches(msg, m.keys.Pin):
		return m, m.dispatchSelected(core.ActionTogglePin)

	case key.Matches(msg, m.keys.Priority):
		return m, m.dispatchSelected(core.ActionTogglePriority)

	case key.Matches(msg, m.keys.Edit):
		if card, ok := m.selected(); ok {
			title := card.Title
			if card.Untitled {
				title = ""
			}
			return m, m.openForm(card.ID, title, card.Text)
		}

	case key.Matches(msg, m.keys.Delete):
		card, ok := m.selected()
		if !ok {
			return m, nil
		}
		c, _ := control(card, core.ActionDelete)
		m.ask(core.PromptDelete, func(ctx context.Context) tea.Cmd {
			return dispatch(ctx, m.svc, c)
		})

	case key.Matches(msg, m.keys.ClearAll):
		if m.view.Total == 0 {
			return m, nil
		}
		m.ask(core.PromptClearAll, func(ctx context.Context) tea.Cmd {
			return callWith(ctx, func(ctx context.Context) (string, error) {
				cleared, err := m.svc.ClearAll(ctx)
				return outcome(cleared, err, "All notes deleted")
			})
		})

	case key.Matches(msg, m.keys.Copy):
		card, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.copy(card.Text); err != nil {
			m.setStatus("", errors.New("copy failed: "+err.Error()))
		} else {
			m.setStatus("Copied note text", nil)
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyCancel):
		m.mode = modeList
		m.search.Blur()
		if m.search.Value() == "" {
			return m, nil
		}
		m.search.SetValue("")
		return m, m.setSearch("")

	case key.Matches(msg, keySubmit):
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		return m, tea.Batch(cmd, m.setSearch(after))
	}
	return m, cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyCancel):
		m.closeForm()
		m.setStatus("Cancelled", nil)
		return m, nil

	case key.Matches(msg, keyNext):
		return m, m.toggleFocus()

	case key.Matches(msg, keySubmit):
		if m.focus == focusTitle {
			return m, m.toggleFocus()
		}
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyConfirm):
		pending := m.confirm
		m.confirm = nil
		m.mode = modeList
		return m, pending.run(core.WithConfirmed(m.ctx))

	case key.Matches(msg, keyRefuse):
		m.confirm = nil
		m.mode = modeList
		m.setStatus("Cancelled", nil)
	}
	return m, nil
}

func (m *Model) openForm(id, title, text string) tea.Cmd {
	m.mode = modeForm
	m.editID = id
	m.title.SetValue(title)
	m.text.SetValue(text)
	m.title.CursorEnd()
	m.text.CursorEnd()
	m.focus = focusTitle
	m.text.Blur()
	return m.title.Focus()
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.editID = ""
	m.title.Blur()
	m.text.Blur()
	m.title.SetValue("")
	m.text.SetValue("")
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusTitle {
		m.focus = focusText
		m.title.Blur()
		return m.text.Focus()
	}
	m.focus = focusTitle
	m.text.Blur()
	return m.title.Focus()
}

func (m *Model) submitForm() tea.Cmd {
	title, text := m.title.Value(), m.text.Value()
	id := m.editID

	if id == "" {
		if strings.TrimSpace(title) == "" && strings.TrimSpace(text) == "" {
			m.setStatus("", core.ErrEmptyNote)
			return nil
		}
		m.closeForm()
		return m.call(func(ctx context.Context) (string, error) {
			if _, err := m.svc.Add(ctx, title, text); err != nil {
				return "", err
			}
			return "Note added", nil
		})
	}

	m.closeForm()
	return m.call(func(ctx context.Context) (string, error) {
		changed, err := m.svc.Edit(ctx, id, core.Edit{Title: &title, Text: &text})
		return outcome(changed, err, "Note updated")
	})
}

func (m *Model) ask(prompt string, run func(ctx context.Context) tea.Cmd) {
	m.mode = modeConfirm
	m.confirm = &confirmation{prompt: prompt, run: run}
}

// call runs fn in a command and reports its result on the status line.
func (m *Model) call(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return callWith(m.ctx, fn)
}

func callWith(ctx context.Context, fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn(ctx)
		return statusMsg{Text: text, Err: err}
	}
}

func (m *Model) dispatchSelected(kind core.ActionKind) tea.Cmd {
	card, ok := m.selected()
	if !ok {
		return nil
	}
	c, ok := control(card, kind)
	if !ok {
		return nil
	}
	return dispatch(m.ctx, m.svc, c)
}

func (m *Model) setSearch(q string) tea.Cmd {
	return m.call(func(ctx context.Context) (string, error) {
		return "", m.svc.SetSearch(ctx, q)
	})
}

func (m *Model) refresh() tea.Cmd {
	return m.call(func(ctx context.Context) (string, error) {
		return "", m.svc.Refresh(ctx)
	})
}

func (m *Model) waitEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return storageEventMsg{Event: e.String()}
	}
}

func (m *Model) ready() tea.Cmd {
	h := m.host
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		_ = h.Ready()
		return nil
	}
}

func (m *Model) selected() (core.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Cards) {
		return core.Card{}, false
	}
	return m.view.Cards[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Cards) {
		m.cursor = len(m.view.Cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(text string, err error) {
	if err != nil {
		m.logger.Error("action failed", "error", err)
		m.status, m.statusErr = err.Error(), true
		return
	}
	if text != "" {
		m.status, m.statusErr = text, false
	}
}
