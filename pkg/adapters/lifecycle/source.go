// Package lifecycle exposes storage change events as a lifecycle.Source so
// the CLI watcher and the terminal UI can consume them like any other
// lifecycle-managed stream.
package lifecycle

import (
	"context"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notes/pkg/core"
)

// DefaultQuiet is the window used to coalesce bursts of events. An atomic
// replace usually reports a CREATE and a MODIFY for the same write.
const DefaultQuiet = 50 * time.Millisecond

type notesSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	quiet  time.Duration
}

// SourceOption configures the source.
type SourceOption func(*notesSource)

// WithQuiet sets the coalescing window. Zero forwards every event as is.
func WithQuiet(d time.Duration) SourceOption {
	return func(s *notesSource) {
		s.quiet = d
	}
}

// NewSource wraps a storage event channel as a lifecycle.Source.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &notesSource{
		events: events,
		out:    make(chan lifecycle.Event),
		quiet:  DefaultQuiet,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *notesSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx ends or the storage channel closes. Within
// one quiet window only the latest event per key is delivered.
func (s *notesSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		var (
			pending []core.Event
			timer   *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil

			case e, ok := <-s.events:
				if !ok {
					s.flush(ctx, pending)
					return nil
				}
				if s.quiet <= 0 {
					if !s.send(ctx, e) {
						return nil
					}
					continue
				}
				pending = coalesce(pending, e)
				if timer == nil {
					timer = time.NewTimer(s.quiet)
				} else {
					timer.Reset(s.quiet)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				if !s.flush(ctx, pending) {
					return nil
				}
				pending = pending[:0]
			}
		}
	})
	return nil
}

func (s *notesSource) flush(ctx context.Context, pending []core.Event) bool {
	for _, e := range pending {
		if !s.send(ctx, e) {
			return false
		}
	}
	return true
}

func (s *notesSource) send(ctx context.Context, e core.Event) bool {
	select {
	case s.out <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// coalesce replaces the pending event of the same key, keeping arrival order
// of keys.
func coalesce(pending []core.Event, e core.Event) []core.Event {
	for i := range pending {
		if pending[i].Key == e.Key {
			pending[i] = e
			return pending
		}
	}
	return append(pending, e)
}
