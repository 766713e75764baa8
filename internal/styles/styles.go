// Package styles holds the palette and the lipgloss styles of the terminal UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	Success = lipgloss.Color("#10B981") // Green
	Error   = lipgloss.Color("#EF4444") // Red

	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")

	// Header and background follow the host theme when embedded.
	HeaderBg = lipgloss.Color("#1c1c1e")
	AppBg    = lipgloss.Color("#0d0d0d")

	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")
	BorderPinned = lipgloss.Color("#F59E0B")
)

// Styles built from the palette. Rebuilt by ApplyHostColors.
var (
	App         lipgloss.Style
	Header      lipgloss.Style
	Card        lipgloss.Style
	CardActive  lipgloss.Style
	CardPinned  lipgloss.Style
	CardTitle   lipgloss.Style
	CardText    lipgloss.Style
	CardDate    lipgloss.Style
	PriorityTag lipgloss.Style
	Empty       lipgloss.Style
	KeyHint     lipgloss.Style
	Muted       lipgloss.Style
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	InputLabel  lipgloss.Style
)

func init() {
	build()
}

func build() {
	App = lipgloss.NewStyle().
		Background(AppBg).
		Padding(0, 1)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Background(HeaderBg).
		Padding(0, 1)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	CardActive = Card.
		BorderForeground(BorderActive)

	CardPinned = Card.
		BorderForeground(BorderPinned)

	CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	CardText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	CardDate = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	PriorityTag = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(1, 2)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	StatusOK = lipgloss.NewStyle().
		Foreground(Success)

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error)

	InputLabel = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
}

// ApplyHostColors replaces the header and background colors with the ones
// of the embedding host. Empty values keep the current color.
func ApplyHostColors(header, background string) {
	if header != "" {
		HeaderBg = lipgloss.Color(header)
	}
	if background != "" {
		AppBg = lipgloss.Color(background)
	}
	build()
}
