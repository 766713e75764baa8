package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/adapters/memory"
	"github.com/aretw0/notes/pkg/adapters/sqlite"
	"github.com/aretw0/notes/pkg/core"
)

// Adapters lists the storage adapter names accepted by WithAdapter.
var Adapters = []string{"fs", "sqlite", "memory"}

// Open builds and initializes the storage selected by the options.
// The 'uri' argument is adapter-specific.
func Open(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.storage != nil {
		return o.storage, nil
	}

	switch o.adapter {
	case "fs":
		return openFS(ctx, uri, o)
	case "sqlite":
		return openSQLite(ctx, uri, o)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// resolve applies the dev sandbox to a file-backed uri.
func resolve(uri string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}
	bypass := readOnly || !devSafety

	sandbox := tempDir || (IsDevRun() && !bypass)
	resolved := ResolvePath(uri, sandbox)

	if o.logger != nil && sandbox && resolved != uri {
		o.logger.Warn("running in SAFE MODE (dev/test sandbox)", "original_path", uri, "resolved_path", resolved)
	}
	return resolved
}

func openFS(ctx context.Context, uri string, o *options) (core.Storage, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	storage := fs.NewStorage(fs.Config{
		Path:         resolve(uri, o),
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
	if err := storage.Initialize(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

func openSQLite(ctx context.Context, uri string, o *options) (core.Storage, error) {
	if uri != "" && uri != ":memory:" {
		uri = resolve(uri, o)
	}
	return sqlite.Open(ctx, sqlite.Config{Path: uri, Logger: o.logger})
}
