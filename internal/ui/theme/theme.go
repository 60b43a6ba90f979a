package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette: harbour blues with signal colours for feedback.
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#0EA5E9") // Sea
	Accent    = lipgloss.Color("#FBBF24") // Buoy yellow
	Success   = lipgloss.Color("#22C55E") // Starboard green
	Error     = lipgloss.Color("#EF4444") // Port red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#0C1E33")
	Border    = lipgloss.Color("#1E3A5F")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Dimmed = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Rule renders a horizontal separator of the given width.
func Rule(width int) string {
	if width < 0 {
		width = 0
	}
	return lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", width))
}
