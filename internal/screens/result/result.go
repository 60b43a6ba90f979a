package result

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/router"
	"github.com/abhisek/sbfquiz/internal/screen"
	"github.com/abhisek/sbfquiz/internal/ui/layout"
	"github.com/abhisek/sbfquiz/internal/ui/theme"
)

// ResultScreen shows the evaluation of a finished exam attempt.
type ResultScreen struct {
	licenseID string
	cfg       exam.Config
	res       exam.Result

	back key.Binding
	quit key.Binding
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen for an attempt of cfg.
func New(licenseID string, cfg exam.Config, res exam.Result) *ResultScreen {
	return &ResultScreen{
		licenseID: licenseID,
		cfg:       cfg,
		res:       res,
		back:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Zurück")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Beenden")),
	}
}

func (s *ResultScreen) Init() tea.Cmd { return nil }

func (s *ResultScreen) Title() string {
	return s.cfg.Title + " · Ergebnis"
}

// Result returns the displayed evaluation.
func (s *ResultScreen) Result() exam.Result { return s.res }

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.back):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case key.Matches(kmsg, s.quit):
		return s, tea.Quit
	}
	return s, nil
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFor(s.back, s.quit)
}

func (s *ResultScreen) View(width, height int) string {
	var b strings.Builder

	if s.res.Passed {
		b.WriteString(theme.Correct.Render("Bestanden!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Nicht bestanden"))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d von %d Fragen richtig", s.res.TotalCorrect, s.res.Total)))
	b.WriteString("\n")
	if s.res.Answered < s.res.Total {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d Fragen unbeantwortet", s.res.Total-s.res.Answered)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch s.cfg.Passing.Kind {
	case exam.PerCategory:
		for _, id := range s.cfg.CategoryIDs() {
			need, ok := s.cfg.Passing.PerCategory[id]
			if !ok {
				continue
			}
			got := s.res.PerCategory[id]
			line := fmt.Sprintf("%-28s %2d / mind. %d", s.categoryName(id), got, need)
			if got >= need {
				b.WriteString(theme.Correct.Render("✓ " + line))
			} else {
				b.WriteString(theme.Incorrect.Render("✗ " + line))
			}
			b.WriteString("\n")
		}
	case exam.Total:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Mindestens %d richtige Antworten erforderlich", s.cfg.Passing.MinTotal)))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 4).
		Render(b.String())
}

func (s *ResultScreen) categoryName(id string) string {
	if c, err := catalog.LookupCategory(s.licenseID, id); err == nil {
		return c.Name
	}
	return id
}
