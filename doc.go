// Package notes is the Composition Root of the notes widget.
//
// It connects the core domain (the note collection, the filter-sort-render
// pipeline and the mutation service) with a storage adapter, following the
// Hexagonal Architecture pattern used across the repository.
//
// All notes live in one JSON array under a single key of a key/value
// storage, the way a browser widget keeps them in local storage. The storage
// is pluggable:
//
//   - "fs": one JSON file per key, written atomically, watchable.
//   - "sqlite": one row per key in a SQLite database (pure Go driver).
//   - "memory": a map, for tests and throwaway sessions.
//
// Usage:
//
//	svc, err := notes.New("./data",
//		notes.WithAdapter("fs"),
//		notes.WithLogger(logger),
//	)
//
//	n, err := svc.Add(ctx, "Groceries", "milk, eggs")
//	_, err = svc.TogglePin(ctx, n.ID)
//	view, err := svc.Render(ctx)
package notes
