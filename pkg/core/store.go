package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "tg_notes_list"

// Store is the persistence accessor: it binds a Storage to one key and
// (de)serializes the whole collection on every call.
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger
}

// NewStore creates a Store for key on storage. An empty key means DefaultKey.
func NewStore(storage Storage, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{storage: storage, key: key, logger: logger}
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Storage returns the underlying storage.
func (s *Store) Storage() Storage { return s.storage }

// Load reads the collection.
// A missing key or an unparsable blob yields an empty collection and no error;
// only storage failures are returned.
func (s *Store) Load(ctx context.Context) ([]Note, error) {
	data, ok, err := s.storage.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", s.key, err)
	}
	if !ok || len(data) == 0 {
		return []Note{}, nil
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		if s.logger != nil {
			s.logger.Warn("stored notes are unreadable, starting empty", "key", s.key, "error", err)
		}
		return []Note{}, nil
	}
	if notes == nil {
		// "null" is valid JSON but not a collection.
		notes = []Note{}
	}
	return notes, nil
}

// Save overwrites the key with the full collection.
func (s *Store) Save(ctx context.Context, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.storage.SetItem(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", s.key, err)
	}
	return nil
}

// Clear removes the key entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.RemoveItem(ctx, s.key); err != nil {
		return fmt.Errorf("failed to remove %q: %w", s.key, err)
	}
	return nil
}
