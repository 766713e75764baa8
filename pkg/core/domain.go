// Package core holds the notes domain: the Note entity, the persistence
// accessor bound to one storage key, the filter-sort-render pipeline and the
// mutation service.
package core

import "fmt"

// EventType represents the type of change seen on a storage key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a storage key made outside this process
// (or by it; watchers do not distinguish).
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
