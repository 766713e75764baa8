package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/lifecycle"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/adapters/memory"
	"github.com/aretw0/notes/pkg/core"
)

type fixture struct {
	m       *Model
	svc     *core.Service
	storage *memory.Storage
	copied  []string
}

func newFixture(t *testing.T, seed ...[2]string) *fixture {
	t.Helper()

	clock := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	storage := memory.New()
	svc := core.NewService(core.NewStore(storage, "", nil), core.ServiceConfig{
		Clock: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	})

	ctx := context.Background()
	for _, s := range seed {
		_, err := svc.Add(ctx, s[0], s[1])
		require.NoError(t, err)
	}

	f := &fixture{svc: svc, storage: storage}
	f.m = New(ctx, svc, Options{Clipboard: func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}})
	f.apply(t, f.m.refresh())
	return f
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys one by one and applies the results of their commands.
func (f *fixture) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := f.m.Update(keyMsg(k))
		f.apply(t, cmd)
	}
}

// apply runs cmd, feeds status messages back into the model and picks up
// the view rendered meanwhile.
func (f *fixture) apply(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range run(cmd) {
		if _, ok := msg.(statusMsg); ok {
			f.m.Update(msg)
		}
	}
	select {
	case <-f.m.feed.ready:
		f.m.Update(viewMsg{View: f.m.feed.latest})
	default:
	}
}

// run executes cmd and flattens batches. Commands that do not return
// quickly (cursor blink ticks) are abandoned.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (f *fixture) notes(t *testing.T) []core.Note {
	t.Helper()
	notes, err := f.svc.Load(context.Background())
	require.NoError(t, err)
	return notes
}

func TestModel_InitialView(t *testing.T) {
	f := newFixture(t, [2]string{"Groceries", "milk"}, [2]string{"", "call mom"})

	require.Len(t, f.m.view.Cards, 2)
	assert.Equal(t, "Untitled", f.m.view.Cards[0].Title, "newest first")

	out := f.m.View()
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "call mom")
	assert.Contains(t, out, "2 notes")
}

func TestModel_EmptyView(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, core.EmptyNoNotes, f.m.view.Empty)
	assert.Contains(t, f.m.View(), core.MessageNoNotes)
}

func TestModel_NewNote(t *testing.T) {
	f := newFixture(t)

	f.press(t, "n")
	assert.Equal(t, modeForm, f.m.mode)

	f.press(t, "Shop", "tab", "milk", "enter")
	assert.Equal(t, modeList, f.m.mode)
	assert.Equal(t, "Note added", f.m.status)

	notes := f.notes(t)
	require.Len(t, notes, 1)
	assert.Equal(t, "Shop", notes[0].Title)
	assert.Equal(t, "milk", notes[0].Text)
	require.Len(t, f.m.view.Cards, 1)
}

func TestModel_NewNote_Blank(t *testing.T) {
	f := newFixture(t)

	f.press(t, "n", "enter", "   ", "enter")
	assert.Equal(t, modeForm, f.m.mode, "form stays open")
	assert.True(t, f.m.statusErr)
	assert.Equal(t, core.ErrEmptyNote.Error(), f.m.status)
	assert.Empty(t, f.notes(t))

	f.press(t, "esc")
	assert.Equal(t, modeList, f.m.mode)
}

func TestModel_Toggles(t *testing.T) {
	f := newFixture(t, [2]string{"a", "first"}, [2]string{"b", "second"})

	// Cursor on the second card ("a", the older note).
	f.press(t, "down", "p")
	notes := f.notes(t)
	require.Len(t, notes, 2)
	assert.True(t, notes[1].IsPinned)
	assert.Equal(t, "Pin toggled", f.m.status)

	// Pinned note moved to the top; cursor still points at index 1 ("b").
	assert.Equal(t, "a", f.m.view.Cards[0].Title)
	f.press(t, "!")
	for _, n := range f.notes(t) {
		assert.Equal(t, n.Title == "b", n.Priority, n.Title)
	}
}

func TestModel_Delete(t *testing.T) {
	f := newFixture(t, [2]string{"keep", "x"}, [2]string{"drop", "y"})

	f.press(t, "d")
	assert.Equal(t, modeConfirm, f.m.mode)
	assert.Contains(t, f.m.View(), core.PromptDelete)

	f.press(t, "n")
	assert.Equal(t, modeList, f.m.mode)
	assert.Len(t, f.notes(t), 2, "refused")

	f.press(t, "d", "y")
	notes := f.notes(t)
	require.Len(t, notes, 1)
	assert.Equal(t, "keep", notes[0].Title)
	assert.Equal(t, "Note deleted", f.m.status)
	assert.Len(t, f.m.view.Cards, 1)
}

func TestModel_ClearAll(t *testing.T) {
	f := newFixture(t, [2]string{"a", "1"}, [2]string{"b", "2"})

	f.press(t, "C")
	require.NotNil(t, f.m.confirm)
	assert.Equal(t, core.PromptClearAll, f.m.confirm.prompt)

	f.press(t, "enter")
	assert.Empty(t, f.notes(t))
	assert.False(t, f.storage.Has(core.DefaultKey))
	assert.Equal(t, core.EmptyNoNotes, f.m.view.Empty)
}

func TestModel_Search(t *testing.T) {
	f := newFixture(t, [2]string{"Trip", "pack bags"}, [2]string{"Shop", "milk"})

	f.press(t, "/", "trip")
	assert.Equal(t, modeSearch, f.m.mode)
	require.Len(t, f.m.view.Cards, 1)
	assert.Equal(t, "Trip", f.m.view.Cards[0].Title)

	f.press(t, "zzz")
	assert.Equal(t, core.EmptyNoMatches, f.m.view.Empty)

	f.press(t, "esc")
	assert.Equal(t, modeList, f.m.mode)
	assert.Equal(t, "", f.svc.Query().Search)
	assert.Len(t, f.m.view.Cards, 2)
}

func TestModel_Sort(t *testing.T) {
	f := newFixture(t, [2]string{"old", "1"}, [2]string{"new", "2"})
	assert.Equal(t, "new", f.m.view.Cards[0].Title)

	f.press(t, "s")
	assert.Equal(t, core.SortDateAsc, f.svc.Query().Sort)
	assert.Equal(t, "Sort: oldest first", f.m.status)
	assert.Equal(t, "old", f.m.view.Cards[0].Title)
}

func TestModel_Edit(t *testing.T) {
	f := newFixture(t, [2]string{"Shop", "milk"})

	f.press(t, "e")
	assert.Equal(t, modeForm, f.m.mode)
	assert.Equal(t, "Shop", f.m.title.Value())
	assert.Equal(t, "milk", f.m.text.Value())

	f.press(t, "enter", " and eggs", "enter")
	notes := f.notes(t)
	require.Len(t, notes, 1)
	assert.Equal(t, "Shop", notes[0].Title)
	assert.Equal(t, "milk and eggs", notes[0].Text)
	assert.Equal(t, "Note updated", f.m.status)
}

func TestModel_Edit_Untitled(t *testing.T) {
	f := newFixture(t, [2]string{"", "milk"})

	f.press(t, "e")
	assert.Equal(t, "", f.m.title.Value(), "the placeholder is not edited as a title")

	f.press(t, "enter", "!", "enter")
	notes := f.notes(t)
	require.Len(t, notes, 1)
	assert.Empty(t, notes[0].Title)
	assert.Equal(t, "milk!", notes[0].Text)
}

func TestModel_Copy(t *testing.T) {
	f := newFixture(t, [2]string{"Shop", "milk"})

	f.press(t, "y")
	assert.Equal(t, []string{"milk"}, f.copied)
	assert.Equal(t, "Copied note text", f.m.status)

	f.m.copy = func(string) error { return errors.New("no clipboard") }
	f.press(t, "y")
	assert.True(t, f.m.statusErr)
	assert.Contains(t, f.m.status, "no clipboard")
}

func TestModel_StorageEvents(t *testing.T) {
	f := newFixture(t)
	events := make(chan lifecycle.Event, 1)
	f.m.events = events

	events <- core.Event{Type: core.EventModify, Key: core.DefaultKey}
	msgs := run(f.m.waitEvent())
	require.Len(t, msgs, 1)
	assert.Equal(t, storageEventMsg{Event: "MODIFY tg_notes_list"}, msgs[0])

	// Another process wrote a note; the event refreshes the view.
	require.NoError(t, f.svc.Store().Save(context.Background(), []core.Note{{ID: "1", Text: "from elsewhere"}}))
	_, cmd := f.m.Update(msgs[0])
	f.apply(t, cmd)
	require.Len(t, f.m.view.Cards, 1)
	assert.Equal(t, "from elsewhere", f.m.view.Cards[0].Text)

	close(events)
	assert.Empty(t, run(f.m.waitEvent()))
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t)
	_, cmd := f.m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
