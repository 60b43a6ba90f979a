package quiz

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/sbfquiz/internal/quiz"
	"github.com/abhisek/sbfquiz/internal/screen"
	"github.com/abhisek/sbfquiz/internal/ui/components"
	"github.com/abhisek/sbfquiz/internal/ui/layout"
)

// loadedMsg is sent when the controller finished loading.
type loadedMsg struct {
	Err error
}

// QuizScreen implements screen.Screen for a practice quiz.
type QuizScreen struct {
	ctrl       *qz.Controller
	title      string
	keys       keyMap
	loading    bool
	confirming bool
	choice     components.MultiChoice
	notice     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a screen driving ctrl. The controller must be unloaded.
func New(ctrl *qz.Controller, title string) *QuizScreen {
	return &QuizScreen{
		ctrl:  ctrl,
		title: title,
		keys:  newKeyMap(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.load()
}

func (s *QuizScreen) Title() string {
	return s.title
}

// Status shows mastered/total once loaded.
func (s *QuizScreen) Status() string {
	if s.loading || s.ctrl.Phase() == qz.PhaseError || s.ctrl.Phase() == qz.PhaseLoading {
		return ""
	}
	p := s.ctrl.Progress()
	return formatMastered(p)
}

func (s *QuizScreen) load() tea.Cmd {
	s.loading = true
	ctrl := s.ctrl
	return func() tea.Msg {
		return loadedMsg{Err: ctrl.Load(context.Background())}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.syncChoice()
		return s, nil
	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	if s.confirming {
		switch {
		case key.Matches(msg, s.keys.Confirm):
			s.confirming = false
			s.notice = ""
			if err := s.ctrl.Reset(ctx); err != nil {
				s.notice = "Fortschritt konnte nicht gelöscht werden: " + err.Error()
			}
			return s, s.load()
		case key.Matches(msg, s.keys.Cancel):
			s.confirming = false
		}
		return s, nil
	}

	if key.Matches(msg, s.keys.Reset) && s.ctrl.Phase() != qz.PhaseError {
		s.confirming = true
		return s, nil
	}

	switch s.ctrl.Phase() {
	case qz.PhasePresenting:
		if key.Matches(msg, s.keys.Answer) {
			if _, err := s.ctrl.Answer(ctx, s.choice.SelectedID()); err == nil {
				s.choice = s.choice.Reveal(s.choice.SelectedID())
			}
			return s, nil
		}
		s.choice = s.choice.Update(msg)

	case qz.PhaseAnswered:
		if key.Matches(msg, s.keys.Next) {
			if err := s.ctrl.Next(ctx); err == nil {
				s.syncChoice()
			}
		}

	case qz.PhaseFinished:
		if key.Matches(msg, s.keys.Refresh) {
			if err := s.ctrl.Refresh(ctx); err == nil {
				s.syncChoice()
			}
		}

	case qz.PhaseError:
		if key.Matches(msg, s.keys.Retry) {
			return s, s.load()
		}
	}
	return s, nil
}

// syncChoice rebuilds the option selector for the current question.
func (s *QuizScreen) syncChoice() {
	if q := s.ctrl.Current(); q != nil {
		s.choice = components.NewMultiChoice(q)
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return nil
	}
	if s.confirming {
		return layout.HintsFor(s.keys.Confirm, s.keys.Cancel)
	}
	switch s.ctrl.Phase() {
	case qz.PhasePresenting:
		return append([]layout.KeyHint{{Key: "↑↓ 1-4", Description: "Auswählen"}},
			layout.HintsFor(s.keys.Answer, s.keys.Reset, s.keys.Back)...)
	case qz.PhaseAnswered:
		return layout.HintsFor(s.keys.Next, s.keys.Back)
	case qz.PhaseFinished:
		return layout.HintsFor(s.keys.Refresh, s.keys.Reset, s.keys.Back)
	case qz.PhaseError:
		return layout.HintsFor(s.keys.Retry, s.keys.Back)
	}
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.loading:
		return renderLoading(width)
	case s.confirming:
		return renderConfirmReset(width)
	}

	switch s.ctrl.Phase() {
	case qz.PhaseError:
		return renderError(width, s.ctrl.Err())
	case qz.PhaseFinished:
		return s.renderFinished(width)
	case qz.PhasePresenting, qz.PhaseAnswered:
		return s.renderQuestion(width)
	}
	return ""
}
