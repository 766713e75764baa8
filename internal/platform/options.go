package platform

import (
	"log/slog"

	"github.com/aretw0/notes/pkg/core"
)

// options holds the internal configuration for a notes service.
type options struct {
	storage   core.Storage
	logger    *slog.Logger
	adapter   string
	key       string
	confirmer core.Confirmer
	renderer  core.Renderer
	clock     core.Clock
	sort      core.SortMode
	view      core.ViewOptions
	config    map[string]any
}

// Option defines a functional option for configuring the notes service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		key:     core.DefaultKey,
		sort:    core.SortDateDesc,
		config:  make(map[string]any),
	}
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or "memory".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithStorage injects a storage, skipping adapter construction.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithKey sets the storage key holding the notes. Defaults to core.DefaultKey.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfirmer sets who approves deletions.
func WithConfirmer(c core.Confirmer) Option {
	return func(o *options) {
		o.confirmer = c
	}
}

// WithRenderer sets who receives the recomputed view.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithClock replaces time.Now (tests).
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithSort sets the initial sort mode.
func WithSort(mode core.SortMode) Option {
	return func(o *options) {
		o.sort = mode
	}
}

// WithView sets the date formatter and the untitled placeholder.
func WithView(v core.ViewOptions) Option {
	return func(o *options) {
		o.view = v
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the fs storage directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly opens the fs storage read-only. Writes return core.ErrReadOnly
// and the dev sandbox is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) file-backed storages are re-rooted into a
// temporary directory.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatcherErrorHandler receives errors of the fs watcher loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
