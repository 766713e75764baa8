package core

import (
	"strconv"
	"sync"
	"time"
)

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

// IDGenerator issues time-derived note IDs: the creation time in Unix
// milliseconds, bumped so that IDs never repeat within the process or
// against the collection being added to.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns a fresh ID for a note created at now that does not collide
// with any ID in existing.
func (g *IDGenerator) Next(now time.Time, existing []Note) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidate := now.UnixMilli()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	for {
		id := strconv.FormatInt(candidate, 10)
		if indexOf(existing, id) < 0 {
			g.last = candidate
			return id
		}
		candidate++
	}
}
