package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/quiz"
	"github.com/abhisek/sbfquiz/internal/router"
	"github.com/abhisek/sbfquiz/internal/screen"
	examscreen "github.com/abhisek/sbfquiz/internal/screens/exam"
	"github.com/abhisek/sbfquiz/internal/screens/home"
	quizscreen "github.com/abhisek/sbfquiz/internal/screens/quiz"
	"github.com/abhisek/sbfquiz/internal/spacedrep"
	"github.com/abhisek/sbfquiz/internal/store"
	"github.com/abhisek/sbfquiz/internal/ui/layout"
)

// Deps holds the collaborators screens are built from.
type Deps struct {
	Repo      bank.Repository
	Progress  store.ProgressRepo
	Scheduler *spacedrep.Scheduler
	Logger    *slog.Logger
}

var _ home.Launcher = Deps{}

// Quiz builds a practice screen for scope.
func (d Deps) Quiz(scope store.Scope, title string) screen.Screen {
	ctrl := quiz.New(scope, quiz.Options{
		Repo:      d.Repo,
		Progress:  d.Progress,
		Scheduler: d.Scheduler,
		Logger:    d.Logger,
	})
	return quizscreen.New(ctrl, title)
}

// Exam builds a timed exam screen.
func (d Deps) Exam(licenseID string, cfg exam.Config) screen.Screen {
	return examscreen.New(d.Repo, licenseID, cfg, nil)
}

// Home builds the menu screen.
func (d Deps) Home() screen.Screen {
	return home.New(d)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at root.
func newAppModel(root screen.Screen) AppModel {
	return AppModel{
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = hp.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = m.defaultHints()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) defaultHints() []layout.KeyHint {
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Zurück"},
			{Key: "Ctrl+C", Description: "Beenden"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Beenden"},
	}
}

// Run starts the Bubble Tea program at root. Every screen still on the
// stack is closed when the program exits.
func Run(root screen.Screen) error {
	m := newAppModel(root)
	defer m.router.CloseAll()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
