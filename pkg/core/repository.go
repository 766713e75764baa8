package core

import "context"

// Storage is the key/value port every storage adapter implements.
// It mirrors the browser Storage API: one opaque value per string key.
//
// GetItem reports ok=false (and no error) when the key does not exist.
type Storage interface {
	GetItem(ctx context.Context, key string) (value []byte, ok bool, err error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
}

// Watchable is implemented by storages that can report changes made by
// other processes.
type Watchable interface {
	// Watch emits an Event each time key changes. The channel is closed
	// when ctx is cancelled.
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Closer is implemented by storages holding resources (files, connections).
type Closer interface {
	Close() error
}

type contextKey string

// confirmedKey marks a context as already confirmed by the user.
const confirmedKey contextKey = "confirmed"

// WithConfirmed returns a context that satisfies the confirmation step of
// destructive operations. Surfaces that show their own dialog use it after
// the user accepted.
func WithConfirmed(ctx context.Context) context.Context {
	return context.WithValue(ctx, confirmedKey, true)
}

// IsConfirmed reports whether ctx was marked with WithConfirmed.
func IsConfirmed(ctx context.Context) bool {
	v, ok := ctx.Value(confirmedKey).(bool)
	return ok && v
}

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Renderer receives the recomputed View after every state or query change.
type Renderer interface {
	Render(ctx context.Context, v View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, v View)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, v View) {
	f(ctx, v)
}
