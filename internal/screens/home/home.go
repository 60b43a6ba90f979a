package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/router"
	"github.com/abhisek/sbfquiz/internal/screen"
	"github.com/abhisek/sbfquiz/internal/store"
	"github.com/abhisek/sbfquiz/internal/ui/components"
	"github.com/abhisek/sbfquiz/internal/ui/layout"
	"github.com/abhisek/sbfquiz/internal/ui/theme"
)

const banner = "⚓  S B F · T R A I N E R  ⚓"

// Launcher builds the screens the home menu navigates to.
type Launcher interface {
	Quiz(scope store.Scope, title string) screen.Screen
	Exam(licenseID string, cfg exam.Config) screen.Screen
}

// HomeScreen lists every license with its practice categories and exams.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen whose entries open screens built by l.
func New(l Launcher) *HomeScreen {
	return &HomeScreen{menu: components.NewMenu(menuItems(l))}
}

func menuItems(l Launcher) []components.MenuItem {
	var items []components.MenuItem
	for _, lic := range catalog.Licenses() {
		items = append(items, components.MenuItem{Label: lic.Name, Detail: lic.Description})

		cats, _ := catalog.Categories(lic.ID)
		exams, _ := catalog.Exams(lic.ID)
		if len(cats) == 0 && len(exams) == 0 {
			items = append(items, components.MenuItem{Label: "  (noch keine Fragen)"})
			continue
		}

		for _, c := range cats {
			scope := store.Scope{LicenseID: lic.ID, CategoryID: c.ID}
			title := lic.Name + " · " + c.Name
			items = append(items, components.MenuItem{
				Label:  "Üben: " + c.Name,
				Detail: fmt.Sprintf("%d Fragen", c.ExpectedQuestionCount),
				Action: push(func() screen.Screen { return l.Quiz(scope, title) }),
			})
		}
		for _, cfg := range exams {
			items = append(items, components.MenuItem{
				Label:  "Prüfung: " + cfg.Title,
				Detail: fmt.Sprintf("%d Fragen · %d min", cfg.TotalQuestions(), cfg.DurationSeconds()/60),
				Action: push(func() screen.Screen { return l.Exam(lic.ID, cfg) }),
			})
		}
	}
	items = append(items, components.MenuItem{Label: "Beenden", Action: func() tea.Cmd { return tea.Quit }})
	return items
}

// push defers building the screen until the entry is chosen.
func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: build()}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Auswählen"},
		{Key: "Enter", Description: "Starten"},
		{Key: "Ctrl+C", Description: "Beenden"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(max(width-6, 20), 80)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(banner)

	menu := lipgloss.NewStyle().
		Width(cw).
		Render(h.menu.View())

	content := strings.Join([]string{title, theme.Rule(cw), menu}, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top).
		PaddingTop(1).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Start"
}
