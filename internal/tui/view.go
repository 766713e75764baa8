package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/aretw0/notes/internal/styles"
	"github.com/aretw0/notes/pkg/core"
)

const (
	cardTextLines = 3
	cardHeight    = cardTextLines + 4 // title, date, two border rows
)

// View renders the screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm())
	case modeConfirm:
		b.WriteString(m.renderList())
		b.WriteString("\n")
		b.WriteString(m.renderConfirm())
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return styles.App.Width(m.width).Render(b.String())
}

func (m *Model) renderHeader() string {
	mode, _ := core.ParseSortMode(string(m.view.Query.Sort))
	info := fmt.Sprintf("%d notes · %s", m.view.Total, mode.Label())
	return styles.Header.Render("Notes") + " " + styles.Muted.Render(info)
}

func (m *Model) renderList() string {
	if m.view.Empty != core.EmptyNone {
		return styles.Empty.Render(m.view.Message())
	}

	// Reserve header, search, status and help lines.
	perPage := max(1, (m.height-6)/cardHeight)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(len(m.view.Cards), start+perPage)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.renderCard(m.view.Cards[i], i == m.cursor))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, cards...)
	if hidden := len(m.view.Cards) - end; hidden > 0 {
		out += "\n" + styles.Muted.Render(fmt.Sprintf("  … %d more", hidden))
	}
	return out
}

func (m *Model) renderCard(card core.Card, active bool) string {
	style := styles.Card
	switch {
	case active:
		style = styles.CardActive
	case card.Pinned:
		style = styles.CardPinned
	}
	inner := max(10, m.width-8)

	var glyphs []string
	for _, c := range card.Controls {
		if c.Kind == core.ActionTogglePin || c.Kind == core.ActionTogglePriority {
			glyphs = append(glyphs, c.Label)
		}
	}
	head := strings.Join(glyphs, " ") + " "
	title := styles.CardTitle.Render(truncate(card.Title, inner-runewidth.StringWidth(head)))
	if card.Priority {
		head = styles.PriorityTag.Render(head)
	}

	lines := []string{head + title}
	lines = append(lines, wrapText(card.Text, inner, cardTextLines)...)
	lines = append(lines, styles.CardDate.Render(card.DateLabel))

	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// wrapText truncates every line of s to width display cells and keeps at
// most maxLines, marking cut text with an ellipsis.
func wrapText(s string, width, maxLines int) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	cut := len(raw) > maxLines
	if cut {
		raw = raw[:maxLines]
	}
	out := make([]string, len(raw))
	for i, line := range raw {
		if cut && i == len(raw)-1 {
			line = truncate(line, width-2) + " …"
		}
		out[i] = styles.CardText.Render(truncate(line, width))
	}
	return out
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func (m *Model) renderForm() string {
	heading := "New note"
	if m.editID != "" {
		heading = "Edit note"
	}
	rows := []string{
		styles.CardTitle.Render(heading),
		styles.InputLabel.Render("Title") + " " + m.title.View(),
		styles.InputLabel.Render("Text ") + " " + m.text.View(),
		styles.KeyHint.Render("tab switch field · enter save · esc cancel"),
	}
	return styles.Card.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderConfirm() string {
	if m.confirm == nil {
		return ""
	}
	body := styles.DialogTitle.Render(m.confirm.prompt) + "\n\n" +
		styles.KeyHint.Render("[y] Yes   [n] No")
	return styles.Dialog.Render(body)
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styles.StatusError.Render(m.status)
	}
	return styles.StatusOK.Render(m.status)
}

func (m *Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.KeyHint.Render(truncate(strings.Join(parts, " · "), max(10, m.width-2)))
}
