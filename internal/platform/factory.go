package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/notes/pkg/core"
)

// New opens the storage at uri and wires a service around it.
//
//	svc, err := notes.New("~/.local/share/notes", notes.WithAdapter("sqlite"))
//
// The URI is adapter-specific: a directory for "fs", a database file or
// directory for "sqlite", ignored by "memory".
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.key == "" {
		return nil, fmt.Errorf("%w: empty key", core.ErrInvalidKey)
	}

	storage, err := Open(context.Background(), uri, opts...)
	if err != nil {
		return nil, err
	}

	store := core.NewStore(storage, o.key, o.logger)
	return core.NewService(store, core.ServiceConfig{
		Confirmer: o.confirmer,
		Renderer:  o.renderer,
		Logger:    o.logger,
		Clock:     o.clock,
		Sort:      o.sort,
		View:      o.view,
	}), nil
}
