package core

import (
	"slices"
	"strings"
	"time"
)

// SortMode selects the display order.
type SortMode string

const (
	SortDateDesc SortMode = "date-desc"
	SortDateAsc  SortMode = "date-asc"
	SortPriority SortMode = "priority"
	SortPinned   SortMode = "pinned"
)

// SortModes lists the modes in selector order.
var SortModes = []SortMode{SortDateDesc, SortDateAsc, SortPriority, SortPinned}

// ParseSortMode maps a selector value to a mode. Unknown values fall back
// to SortDateDesc and ok is false.
func ParseSortMode(s string) (mode SortMode, ok bool) {
	for _, m := range SortModes {
		if string(m) == s {
			return m, true
		}
	}
	return SortDateDesc, false
}

// Label returns the selector label of the mode.
func (m SortMode) Label() string {
	switch m {
	case SortDateAsc:
		return "oldest first"
	case SortPriority:
		return "priority first"
	case SortPinned:
		return "pinned first"
	default:
		return "newest first"
	}
}

// Next returns the following mode in selector order, wrapping around.
func (m SortMode) Next() SortMode {
	i := slices.Index(SortModes, m)
	return SortModes[(i+1)%len(SortModes)]
}

// Query is the state of the search input and sort selector.
type Query struct {
	Search string
	Sort   SortMode
}

// normalized returns the trimmed search text.
func (q Query) normalized() string {
	return strings.TrimSpace(q.Search)
}

// Filter keeps the notes whose text or title contains search, ignoring case.
// The input slice is not modified.
func Filter(notes []Note, search string) []Note {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.Matches(q) {
			out = append(out, n)
		}
	}
	return out
}

// Sort orders notes in place for mode. Pinned notes always come first;
// remaining ties are broken by date, newest first. The sort is stable.
func Sort(notes []Note, mode SortMode) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return Compare(a, b, mode)
	})
}

// Compare is the display comparator: negative when a goes before b.
func Compare(a, b Note, mode SortMode) int {
	if a.IsPinned != b.IsPinned {
		if a.IsPinned {
			return -1
		}
		return 1
	}

	switch mode {
	case SortPriority:
		if a.Priority != b.Priority {
			if a.Priority {
				return -1
			}
			return 1
		}
	case SortDateAsc:
		return a.Date.Compare(b.Date)
	}

	// date-desc, pinned, unknown modes and unresolved ties
	return b.Date.Compare(a.Date)
}

// DateFormatter renders a note date for display.
type DateFormatter func(time.Time) string

// DefaultDateLayout matches the dd.mm.yyyy hh:mm rendering of the widget.
const DefaultDateLayout = "02.01.2006 15:04"

// LayoutFormatter formats dates in local time with a Go layout.
func LayoutFormatter(layout string) DateFormatter {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return func(t time.Time) string {
		return t.Local().Format(layout)
	}
}
