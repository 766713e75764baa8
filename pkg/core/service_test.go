package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/adapters/memory"
	"github.com/aretw0/notes/pkg/core"
)

// recorder captures every View pushed by the service.
type recorder struct {
	views []core.View
}

func (r *recorder) Render(_ context.Context, v core.View) {
	r.views = append(r.views, v)
}

func (r *recorder) last(t *testing.T) core.View {
	t.Helper()
	require.NotEmpty(t, r.views, "expected a render")
	return r.views[len(r.views)-1]
}

// answer is a Confirmer returning a fixed answer and recording prompts.
type answer struct {
	yes     bool
	prompts []string
}

func (a *answer) Confirm(_ context.Context, prompt string) bool {
	a.prompts = append(a.prompts, prompt)
	return a.yes
}

type fixture struct {
	svc     *core.Service
	storage *memory.Storage
	rec     *recorder
	confirm *answer
	now     time.Time
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		storage: memory.New(),
		rec:     &recorder{},
		confirm: &answer{yes: true},
		now:     time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
		ctx:     context.Background(),
	}
	f.svc = core.NewService(core.NewStore(f.storage, "", nil), core.ServiceConfig{
		Confirmer: f.confirm,
		Renderer:  f.rec,
		Clock: func() time.Time {
			f.now = f.now.Add(time.Minute)
			return f.now
		},
	})
	return f
}

func (f *fixture) load(t *testing.T) []core.Note {
	t.Helper()
	notes, err := f.svc.Load(f.ctx)
	require.NoError(t, err)
	return notes
}

func strPtr(s string) *string { return &s }

func TestService_Add(t *testing.T) {
	t.Run("Prepends And Renders", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.svc.Add(f.ctx, "", "  first  ")
		require.NoError(t, err)
		second, err := f.svc.Add(f.ctx, "Second", "")
		require.NoError(t, err)

		notes := f.load(t)
		require.Len(t, notes, 2)
		assert.Equal(t, second.ID, notes[0].ID, "new notes are prepended")
		assert.Equal(t, first.ID, notes[1].ID)

		assert.Equal(t, "first", notes[1].Text)
		assert.Empty(t, notes[1].Title, "blank titles are stored empty")
		assert.Equal(t, core.DefaultTitle, f.rec.last(t).Cards[1].Title)
		assert.Equal(t, "Second", notes[0].Title)
		assert.False(t, notes[0].IsPinned)
		assert.False(t, notes[0].Priority)
		assert.NotEqual(t, first.ID, second.ID)
		assert.True(t, second.Date.After(first.Date))

		require.Len(t, f.rec.views, 2)
		assert.Len(t, f.rec.last(t).Cards, 2)
	})

	t.Run("Rejects Blank Input", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Add(f.ctx, "x", "keep")
		require.NoError(t, err)
		before := f.load(t)
		renders := len(f.rec.views)

		_, err = f.svc.Add(f.ctx, "  ", "\n\t")
		require.ErrorIs(t, err, core.ErrEmptyNote)

		assert.Equal(t, before, f.load(t))
		assert.Len(t, f.rec.views, renders, "rejected add must not re-render")
	})

	t.Run("Unique IDs Within One Millisecond", func(t *testing.T) {
		storage := memory.New()
		fixed := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
		svc := core.NewService(core.NewStore(storage, "", nil), core.ServiceConfig{
			Clock: func() time.Time { return fixed },
		})

		seen := map[string]bool{}
		for i := 0; i < 5; i++ {
			n, err := svc.Add(context.Background(), "", "same instant")
			require.NoError(t, err)
			assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
			seen[n.ID] = true
		}
	})

	t.Run("Storage Failure", func(t *testing.T) {
		f := newFixture(t)
		f.storage.FailWrites = errors.New("disk full")

		_, err := f.svc.Add(f.ctx, "", "text")
		require.Error(t, err)
		assert.Empty(t, f.rec.views)
	})
}

func TestService_Toggles(t *testing.T) {
	f := newFixture(t)
	n, err := f.svc.Add(f.ctx, "", "toggle me")
	require.NoError(t, err)

	found, err := f.svc.TogglePin(f.ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, f.load(t)[0].IsPinned)
	assert.True(t, f.rec.last(t).Cards[0].Pinned)

	found, err = f.svc.TogglePriority(f.ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, f.load(t)[0].Priority)

	_, err = f.svc.TogglePin(f.ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, f.load(t)[0].IsPinned)

	renders := len(f.rec.views)
	found, err = f.svc.TogglePin(f.ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, f.rec.views, renders, "unknown id is a silent no-op")
}

func TestService_Edit(t *testing.T) {
	t.Run("Replaces Fields", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.svc.Add(f.ctx, "Old", "old text")
		require.NoError(t, err)

		changed, err := f.svc.Edit(f.ctx, n.ID, core.Edit{Title: strPtr(" New "), Text: strPtr(" new text ")})
		require.NoError(t, err)
		assert.True(t, changed)

		got := f.load(t)[0]
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "new text", got.Text)
		assert.Equal(t, n.ID, got.ID, "id is immutable")
		assert.True(t, n.Date.Equal(got.Date), "date is immutable")
	})

	t.Run("Blank Text Keeps Text", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.svc.Add(f.ctx, "Title", "body")
		require.NoError(t, err)

		changed, err := f.svc.Edit(f.ctx, n.ID, core.Edit{Title: strPtr("Title"), Text: strPtr("   ")})
		require.NoError(t, err)
		assert.False(t, changed, "nothing changed, nothing saved")
		assert.Equal(t, "body", f.load(t)[0].Text)

		changed, err = f.svc.Edit(f.ctx, n.ID, core.Edit{Title: strPtr("Title"), Text: nil})
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("Cancelled Title Clears Title", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.svc.Add(f.ctx, "Title", "body")
		require.NoError(t, err)

		changed, err := f.svc.Edit(f.ctx, n.ID, core.Edit{Title: nil, Text: strPtr("body")})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Empty(t, f.load(t)[0].Title)
		assert.Equal(t, core.DefaultTitle, f.rec.last(t).Cards[0].Title)

		changed, err = f.svc.Edit(f.ctx, n.ID, core.Edit{Title: strPtr("   "), Text: nil})
		require.NoError(t, err)
		assert.False(t, changed, "already untitled")
	})

	t.Run("Unknown ID", func(t *testing.T) {
		f := newFixture(t)
		changed, err := f.svc.Edit(f.ctx, "nope", core.Edit{Text: strPtr("x")})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, f.load(t))
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Removes After Confirmation", func(t *testing.T) {
		f := newFixture(t)
		a, _ := f.svc.Add(f.ctx, "", "a")
		b, _ := f.svc.Add(f.ctx, "", "b")

		deleted, err := f.svc.Delete(f.ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []string{b.ID}, ids(f.load(t)))
		assert.Equal(t, []string{core.PromptDelete}, f.confirm.prompts)
	})

	t.Run("Declined", func(t *testing.T) {
		f := newFixture(t)
		a, _ := f.svc.Add(f.ctx, "", "a")
		f.confirm.yes = false

		deleted, err := f.svc.Delete(f.ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Len(t, f.load(t), 1)
	})

	t.Run("Unknown ID Leaves Collection", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.Add(f.ctx, "", "a")
		_, _ = f.svc.Add(f.ctx, "", "b")
		before := f.load(t)

		deleted, err := f.svc.Delete(f.ctx, "missing")
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Equal(t, before, f.load(t))
	})

	t.Run("Confirmed Context Skips Confirmer", func(t *testing.T) {
		f := newFixture(t)
		a, _ := f.svc.Add(f.ctx, "", "a")
		f.confirm.yes = false

		deleted, err := f.svc.Delete(core.WithConfirmed(f.ctx), a.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Empty(t, f.confirm.prompts)
	})

	t.Run("No Confirmer Refuses", func(t *testing.T) {
		storage := memory.New()
		svc := core.NewService(core.NewStore(storage, "", nil), core.ServiceConfig{})
		n, err := svc.Add(context.Background(), "", "a")
		require.NoError(t, err)

		deleted, err := svc.Delete(context.Background(), n.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestService_ClearAll(t *testing.T) {
	f := newFixture(t)
	_, _ = f.svc.Add(f.ctx, "", "a")
	_, _ = f.svc.Add(f.ctx, "", "b")

	f.confirm.yes = false
	cleared, err := f.svc.ClearAll(f.ctx)
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Len(t, f.load(t), 2)

	f.confirm.yes = true
	cleared, err = f.svc.ClearAll(f.ctx)
	require.NoError(t, err)
	assert.True(t, cleared)

	assert.Empty(t, f.load(t))
	assert.False(t, f.storage.Has(core.DefaultKey))
	assert.Equal(t, core.EmptyNoNotes, f.rec.last(t).Empty)
	assert.Equal(t, []string{core.PromptClearAll, core.PromptClearAll}, f.confirm.prompts)
}

func TestService_UntitledNotes(t *testing.T) {
	f := newFixture(t)
	// Written by the title-less schema variant.
	legacy := `[{"id":"1","text":"alpha","date":"2024-01-01T00:00:00Z","priority":false,"isPinned":false}]`
	require.NoError(t, f.storage.SetItem(f.ctx, core.DefaultKey, []byte(legacy)))
	_, err := f.svc.Add(f.ctx, "", "delta")
	require.NoError(t, err)

	for _, n := range f.load(t) {
		assert.Empty(t, n.Title, n.Text)
	}

	require.NoError(t, f.svc.SetSearch(f.ctx, "untitled"))
	assert.Equal(t, core.EmptyNoMatches, f.rec.last(t).Empty, "the placeholder is not searchable")

	require.NoError(t, f.svc.SetSearch(f.ctx, ""))
	v := f.rec.last(t)
	require.Len(t, v.Cards, 2)
	for _, c := range v.Cards {
		assert.Equal(t, core.DefaultTitle, c.Title)
		assert.True(t, c.Untitled)
	}
}

func TestService_QueryControls(t *testing.T) {
	f := newFixture(t)
	_, _ = f.svc.Add(f.ctx, "Groceries", "milk")
	_, _ = f.svc.Add(f.ctx, "", "call mom")

	require.NoError(t, f.svc.SetSearch(f.ctx, "grocer"))
	v := f.rec.last(t)
	require.Len(t, v.Cards, 1)
	assert.Equal(t, "Groceries", v.Cards[0].Title)

	require.NoError(t, f.svc.SetSearch(f.ctx, "zebra"))
	assert.Equal(t, core.EmptyNoMatches, f.rec.last(t).Empty)

	require.NoError(t, f.svc.SetSearch(f.ctx, ""))
	require.NoError(t, f.svc.SetSort(f.ctx, core.SortDateAsc))
	v = f.rec.last(t)
	require.Len(t, v.Cards, 2)
	assert.Equal(t, "milk", v.Cards[0].Text)
	assert.Equal(t, core.SortDateAsc, f.svc.Query().Sort)

	require.NoError(t, f.svc.SetSort(f.ctx, "nonsense"))
	assert.Equal(t, core.SortDateDesc, f.svc.Query().Sort)

	rendered, err := f.svc.Render(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "call mom", rendered.Cards[0].Text)
}

func TestService_State(t *testing.T) {
	f := newFixture(t)
	state, ok := f.svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, core.DefaultKey, state.StorageKey)
	assert.Equal(t, "memory", state.StorageType)
	assert.True(t, state.Confirmer)
	assert.Equal(t, "service", f.svc.ComponentType())
}
