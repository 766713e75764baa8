package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Prompts shown before destructive operations.
const (
	PromptDelete   = "Delete this note?"
	PromptClearAll = "Are you sure you want to delete ALL notes?"
)

// ServiceConfig holds the collaborators of a Service. Zero values are
// replaced by defaults in NewService.
type ServiceConfig struct {
	Confirmer Confirmer
	Renderer  Renderer
	Logger    *slog.Logger
	Clock     Clock
	Sort      SortMode
	View      ViewOptions
}

// Service handles the business logic for notes.
//
// Every public method is one transaction: load the full collection, mutate
// it in memory, save it back, and push the recomputed View to the Renderer.
// Methods are serialized by a mutex, so a Renderer must not call back into
// the Service.
type Service struct {
	mu        sync.Mutex
	store     *Store
	query     Query
	confirmer Confirmer
	renderer  Renderer
	logger    *slog.Logger
	clock     Clock
	ids       *IDGenerator
	viewOpts  ViewOptions
}

// NewService creates a new Service around store.
func NewService(store *Store, cfg ServiceConfig) *Service {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	sortMode, _ := ParseSortMode(string(cfg.Sort))

	return &Service{
		store:     store,
		query:     Query{Sort: sortMode},
		confirmer: cfg.Confirmer,
		renderer:  cfg.Renderer,
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		ids:       &IDGenerator{},
		viewOpts:  cfg.View,
	}
}

// Store returns the persistence accessor.
func (s *Service) Store() *Store { return s.store }

// SetRenderer replaces the Renderer. Surfaces built after the service (the
// terminal UI) attach themselves here.
func (s *Service) SetRenderer(r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = r
}

// Close releases the storage when it holds resources.
func (s *Service) Close() error {
	if c, ok := s.store.Storage().(Closer); ok {
		return c.Close()
	}
	return nil
}

// Query returns the current search and sort state.
func (s *Service) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Load returns the persisted collection.
func (s *Service) Load(ctx context.Context) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// Save overwrites the persisted collection and re-renders.
func (s *Service) Save(ctx context.Context, notes []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, notes); err != nil {
		return err
	}
	s.renderLocked(ctx, notes)
	return nil
}

// Render recomputes the View from the persisted collection without pushing
// it to the Renderer.
func (s *Service) Render(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.store.Load(ctx)
	if err != nil {
		return View{}, err
	}
	return BuildView(notes, s.query, s.viewOpts), nil
}

// Refresh recomputes the View and pushes it to the Renderer.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// SetSearch updates the search text and re-renders.
func (s *Service) SetSearch(ctx context.Context, search string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = search
	return s.refreshLocked(ctx)
}

// SetSort updates the sort mode and re-renders. Unknown modes become
// SortDateDesc.
func (s *Service) SetSort(ctx context.Context, mode SortMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Sort, _ = ParseSortMode(string(mode))
	return s.refreshLocked(ctx)
}

// Add validates the input and prepends a new note.
// Blank title and text (after trimming) yield ErrEmptyNote and nothing is saved.
func (s *Service) Add(ctx context.Context, title, text string) (Note, error) {
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if title == "" && text == "" {
		return Note{}, ErrEmptyNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return Note{}, err
	}

	now := s.clock()
	note := Note{
		ID:    s.ids.Next(now, notes),
		Title: title,
		Text:  text,
		Date:  now.UTC(),
	}

	notes = append([]Note{note}, notes...)
	if err := s.store.Save(ctx, notes); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note added", "id", note.ID)
	s.renderLocked(ctx, notes)
	return note, nil
}

// TogglePin flips the pinned flag. found is false when no note has id.
func (s *Service) TogglePin(ctx context.Context, id string) (found bool, err error) {
	return s.mutate(ctx, id, func(n *Note) bool {
		n.IsPinned = !n.IsPinned
		return true
	})
}

// TogglePriority flips the priority flag. found is false when no note has id.
func (s *Service) TogglePriority(ctx context.Context, id string) (found bool, err error) {
	return s.mutate(ctx, id, func(n *Note) bool {
		n.Priority = !n.Priority
		return true
	})
}

// Edit carries the answers of the edit prompts. A nil field means the
// prompt was cancelled.
type Edit struct {
	Title *string
	Text  *string
}

// Edit applies e to the note. A cancelled or blank title clears the title
// (cards show the placeholder); a cancelled or blank text leaves the text
// unchanged.
// The collection is saved only when a field actually changed.
func (s *Service) Edit(ctx context.Context, id string, e Edit) (changed bool, err error) {
	return s.mutate(ctx, id, func(n *Note) bool {
		dirty := false

		title := ""
		if e.Title != nil && strings.TrimSpace(*e.Title) != "" {
			title = strings.TrimSpace(*e.Title)
		}
		if title != n.Title {
			n.Title = title
			dirty = true
		}

		if e.Text != nil {
			if text := strings.TrimSpace(*e.Text); text != "" && text != n.Text {
				n.Text = text
				dirty = true
			}
		}
		return dirty
	})
}

// Delete removes the note after confirmation. deleted is false when the user
// declined or no note has id.
func (s *Service) Delete(ctx context.Context, id string) (deleted bool, err error) {
	if !s.confirm(ctx, PromptDelete) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return false, nil
	}

	notes = append(notes[:i], notes[i+1:]...)
	if err := s.store.Save(ctx, notes); err != nil {
		return false, err
	}
	s.logger.Debug("note deleted", "id", id)
	s.renderLocked(ctx, notes)
	return true, nil
}

// ClearAll removes the whole collection (the storage key itself) after
// confirmation.
func (s *Service) ClearAll(ctx context.Context) (cleared bool, err error) {
	if !s.confirm(ctx, PromptClearAll) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return false, err
	}
	s.logger.Debug("notes cleared", "key", s.store.Key())
	s.renderLocked(ctx, nil)
	return true, nil
}

// mutate is the shared read-modify-write cycle of the per-note operations.
// fn reports whether it changed the note; unchanged notes are not saved.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Note) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		s.logger.Debug("note not found", "id", id)
		return false, nil
	}
	if !fn(&notes[i]) {
		return false, nil
	}

	if err := s.store.Save(ctx, notes); err != nil {
		return false, fmt.Errorf("failed to update note %s: %w", id, err)
	}
	s.renderLocked(ctx, notes)
	return true, nil
}

func (s *Service) confirm(ctx context.Context, prompt string) bool {
	if IsConfirmed(ctx) {
		return true
	}
	if s.confirmer == nil {
		s.logger.Debug("no confirmer configured, refusing", "prompt", prompt)
		return false
	}
	return s.confirmer.Confirm(ctx, prompt)
}

func (s *Service) refreshLocked(ctx context.Context) error {
	if s.renderer == nil {
		return nil
	}
	notes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.renderLocked(ctx, notes)
	return nil
}

func (s *Service) renderLocked(ctx context.Context, notes []Note) {
	if s.renderer == nil {
		return
	}
	s.renderer.Render(ctx, BuildView(notes, s.query, s.viewOpts))
}

// Watch forwards change events of the store's key when the storage supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.store.Storage().(Watchable)
	if !ok {
		return nil, fmt.Errorf("storage does not support watching")
	}
	return w.Watch(ctx, s.store.Key())
}
