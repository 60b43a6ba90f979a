package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sbfquiz/internal/question"
	"github.com/abhisek/sbfquiz/internal/ui/theme"
)

// MultiChoice is a cursor over a question's options. It does not grade;
// the owner marks it revealed with the chosen option once the answer is
// recorded.
type MultiChoice struct {
	Options  []question.Option
	Selected int

	revealed bool
	chosenID string
}

// NewMultiChoice creates a selector over q's options.
func NewMultiChoice(q *question.Question) MultiChoice {
	return MultiChoice{Options: q.Options}
}

// Update moves the cursor. Number keys jump to an option.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	if m.revealed {
		return m
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m
	}

	switch s := kmsg.String(); s {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.Options) {
				m.Selected = i
			}
		}
	}
	return m
}

// SelectedID returns the option id under the cursor.
func (m MultiChoice) SelectedID() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected].ID
}

// Reveal shows the correct option and the chosen one.
func (m MultiChoice) Reveal(chosenID string) MultiChoice {
	m.revealed = true
	m.chosenID = chosenID
	return m
}

// Revealed reports whether the answer is shown.
func (m MultiChoice) Revealed() bool { return m.revealed }

// View renders the options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(max(width-8, 20))

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := wrap.Render(fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt.Text))

		switch {
		case m.revealed && opt.IsCorrect:
			line = theme.Correct.Render(line + "  ✓")
		case m.revealed && opt.ID == m.chosenID:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.revealed:
			line = theme.Dimmed.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
