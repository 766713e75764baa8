package core

import (
	"strings"
	"time"
)

// DefaultTitle is shown when a note has no title. Blank titles are stored
// empty so the placeholder can change without rewriting notes.
const DefaultTitle = "Untitled"

// Note is the central entity of the domain.
// It is a short user-authored entry persisted as one element of the stored JSON array.
//
// The JSON keys match the layout written by the widget, so collections saved
// by either schema variant (with or without "title") decode into this struct.
type Note struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Text     string    `json:"text" yaml:"text"`
	Date     time.Time `json:"date" yaml:"date"`
	Priority bool      `json:"priority" yaml:"priority"`
	IsPinned bool      `json:"isPinned" yaml:"isPinned"`
}

// DisplayTitle returns the title, or placeholder when the title is blank.
func (n Note) DisplayTitle(placeholder string) string {
	if strings.TrimSpace(n.Title) == "" {
		return placeholder
	}
	return n.Title
}

// Matches reports whether the note's text or title contains query,
// ignoring case. The query is expected to be trimmed and lowercased already.
func (n Note) Matches(lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Text), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Title), lowerQuery)
}

// indexOf performs the linear scan used by every mutation.
// It returns -1 when no note carries the id.
func indexOf(notes []Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}
