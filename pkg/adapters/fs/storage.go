// Package fs implements core.Storage on a directory: every key is one JSON
// file, replaced atomically on each write.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// Ext is the extension of key files.
const Ext = ".json"

// Storage implements core.Storage using the filesystem.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool        // fail Initialize instead of creating Path
	ReadOnly     bool        // reject SetItem and RemoveItem with core.ErrReadOnly
	FileMode     os.FileMode // defaults to 0644
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher errors; nil logs them
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.FileMode == 0 {
		config.FileMode = 0644
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the storage directory exists and sweeps temp files
// left behind by interrupted writes.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat storage path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	if s.config.ReadOnly {
		return nil
	}

	removed, err := removeStaleTemps(s.Path, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sweep temp files: %w", err)
	}
	if removed > 0 && s.config.Logger != nil {
		s.config.Logger.Info("removed stale temp files", "count", removed, "path", s.Path)
	}
	return nil
}

// filename maps a key to its file, rejecting keys that would escape the
// storage directory or that collide with glob syntax used by the watcher.
func (s *Storage) filename(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	if strings.ContainsAny(key, `/\*?[]{}`) || strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	return filepath.Join(s.Path, key+Ext), nil
}

// GetItem reads the file of key. A missing file reports ok=false.
func (s *Storage) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	name, err := s.filename(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(name)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, true, nil
}

// SetItem atomically replaces the file of key.
func (s *Storage) SetItem(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	name, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := writeFileAtomic(name, value, s.config.FileMode); err != nil {
		return err
	}

	s.recordWrite()
	if s.config.Logger != nil {
		s.config.Logger.Debug("item written", "key", key, "bytes", len(value))
	}
	return nil
}

// RemoveItem deletes the file of key. A missing file is not an error.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	name, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}

	s.recordWrite()
	if s.config.Logger != nil {
		s.config.Logger.Debug("item removed", "key", key)
	}
	return nil
}

var (
	_ core.Storage   = (*Storage)(nil)
	_ core.Watchable = (*Storage)(nil)
)
