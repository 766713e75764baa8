package core

import "strings"

// ActionKind identifies a per-note control.
type ActionKind string

const (
	ActionTogglePin      ActionKind = "toggle-pin"
	ActionTogglePriority ActionKind = "toggle-priority"
	ActionEdit           ActionKind = "edit"
	ActionDelete         ActionKind = "delete"
)

// Control is one action button of a card. Surfaces bind it by (Kind, NoteID).
type Control struct {
	Kind   ActionKind
	NoteID string
	Label  string // glyph shown on the button
	Hint   string // tooltip
}

// Card is the display data of one note.
type Card struct {
	ID        string
	Title     string
	Text      string
	DateLabel string
	Pinned    bool
	Priority  bool
	Untitled  bool // Title is the placeholder
	Controls  []Control
}

// EmptyKind tells which placeholder an empty view shows.
type EmptyKind int

const (
	EmptyNone EmptyKind = iota
	EmptyNoNotes
	EmptyNoMatches
)

// Placeholder messages.
const (
	MessageNoNotes   = "No notes yet. Add the first one!"
	MessageNoMatches = "No notes match your search."
)

// View is the declarative result of the pipeline.
type View struct {
	Query Query
	Cards []Card
	Empty EmptyKind
	Total int // size of the unfiltered collection
}

// Message returns the placeholder text, or "" when the view has cards.
func (v View) Message() string {
	switch v.Empty {
	case EmptyNoNotes:
		return MessageNoNotes
	case EmptyNoMatches:
		return MessageNoMatches
	}
	return ""
}

// Card returns the card for id.
func (v View) Card(id string) (Card, bool) {
	for _, c := range v.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// ViewOptions tune how cards are built.
type ViewOptions struct {
	FormatDate DateFormatter
	Untitled   string
}

// BuildView runs the pipeline: filter by q.Search, sort by q.Sort, then turn
// every note into a Card. notes is not modified.
func BuildView(notes []Note, q Query, opts ViewOptions) View {
	if opts.FormatDate == nil {
		opts.FormatDate = LayoutFormatter("")
	}
	if opts.Untitled == "" {
		opts.Untitled = DefaultTitle
	}
	if _, ok := ParseSortMode(string(q.Sort)); !ok {
		q.Sort = SortDateDesc
	}

	filtered := Filter(notes, q.Search)
	Sort(filtered, q.Sort)

	v := View{Query: q, Total: len(notes)}
	if len(filtered) == 0 {
		if q.normalized() != "" {
			v.Empty = EmptyNoMatches
		} else {
			v.Empty = EmptyNoNotes
		}
		return v
	}

	v.Cards = make([]Card, 0, len(filtered))
	for _, n := range filtered {
		v.Cards = append(v.Cards, newCard(n, opts))
	}
	return v
}

func newCard(n Note, opts ViewOptions) Card {
	pinLabel, starLabel := "📌", "☆"
	if n.IsPinned {
		pinLabel = "📍"
	}
	if n.Priority {
		starLabel = "★"
	}

	return Card{
		ID:        n.ID,
		Title:     n.DisplayTitle(opts.Untitled),
		Text:      n.Text,
		DateLabel: opts.FormatDate(n.Date),
		Pinned:    n.IsPinned,
		Priority:  n.Priority,
		Untitled:  strings.TrimSpace(n.Title) == "",
		Controls: []Control{
			{Kind: ActionTogglePin, NoteID: n.ID, Label: pinLabel, Hint: "Pin/unpin"},
			{Kind: ActionTogglePriority, NoteID: n.ID, Label: starLabel, Hint: "High priority"},
			{Kind: ActionEdit, NoteID: n.ID, Label: "✏️", Hint: "Edit"},
			{Kind: ActionDelete, NoteID: n.ID, Label: "🗑️", Hint: "Delete"},
		},
	}
}
