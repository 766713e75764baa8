package notes

import (
	"context"
	"log/slog"

	"github.com/aretw0/notes/internal/platform"
	"github.com/aretw0/notes/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// View is a public alias for the rendered view model.
type View = core.View

// SortMode is a public alias for the ordering of the view.
type SortMode = core.SortMode

// Service is a public alias for the mutation service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorage injects a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithKey sets the storage key holding the notes.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithConfirmer sets who approves deletions.
func WithConfirmer(c core.Confirmer) Option {
	return platform.WithConfirmer(c)
}

// WithRenderer sets who receives the view after every change.
func WithRenderer(r core.Renderer) Option {
	return platform.WithRenderer(r)
}

// WithClock replaces time.Now.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithSort sets the initial sort mode.
func WithSort(mode core.SortMode) Option {
	return platform.WithSort(mode)
}

// WithView sets the date formatter and the untitled placeholder.
func WithView(v core.ViewOptions) Option {
	return platform.WithView(v)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist requires the storage directory to exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the storage read-only.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler receives errors of the storage watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a notes service on the storage at uri.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// Open builds and initializes the storage only.
func Open(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	return platform.Open(ctx, uri, opts...)
}

// --- Safety ---

// ResolvePath determines the storage path based on the dev sandbox rules.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
