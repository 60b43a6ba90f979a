package exam

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sbfquiz/internal/bank"
	ex "github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/router"
	"github.com/abhisek/sbfquiz/internal/screen"
	"github.com/abhisek/sbfquiz/internal/screens/result"
	"github.com/abhisek/sbfquiz/internal/ui/components"
	"github.com/abhisek/sbfquiz/internal/ui/layout"
)

// ExamScreen runs one timed exam attempt. The countdown runs on the
// session's own timer; ticks and the final result reach the event loop
// through channels.
type ExamScreen struct {
	repo      bank.Repository
	licenseID string
	cfg       ex.Config
	rng       *rand.Rand
	interval  time.Duration
	keys      keyMap

	ctx    context.Context
	cancel context.CancelFunc
	ticks  chan int
	done   chan ex.Result

	session    *ex.Session
	loading    bool
	err        error
	choice     components.MultiChoice
	confirming bool
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)
var _ screen.Closer = (*ExamScreen)(nil)

// New creates an exam screen for cfg. rng may be nil.
func New(repo bank.Repository, licenseID string, cfg ex.Config, rng *rand.Rand) *ExamScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ExamScreen{
		repo:      repo,
		licenseID: licenseID,
		cfg:       cfg,
		rng:       rng,
		interval:  time.Second,
		keys:      newKeyMap(),
		ctx:       ctx,
		cancel:    cancel,
		ticks:     make(chan int, 1),
		done:      make(chan ex.Result, 1),
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	s.loading = true
	ctx, repo, licenseID, cfg, rng := s.ctx, s.repo, s.licenseID, s.cfg, s.rng
	return func() tea.Msg {
		sess, err := ex.Prepare(ctx, repo, licenseID, cfg, rng)
		return preparedMsg{Session: sess, Err: err}
	}
}

func (s *ExamScreen) Title() string {
	return s.cfg.Title
}

// Status shows the countdown and the question position.
func (s *ExamScreen) Status() string {
	if s.session == nil {
		return ""
	}
	_, i := s.session.Current()
	return fmt.Sprintf("Frage %d/%d  ⏱ %s", i+1, s.session.Len(), layout.FormatCountdown(s.session.Remaining()))
}

// Close cancels the countdown. The attempt is discarded.
func (s *ExamScreen) Close() {
	s.cancel()
	if s.session != nil {
		s.session.Stop()
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case preparedMsg:
		return s.handlePrepared(msg)
	case tickMsg:
		return s, s.wait()
	case finishedMsg:
		next := result.New(s.licenseID, s.cfg, msg.Result)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case tea.KeyPressMsg:
		if s.session == nil || s.session.Finished() {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) handlePrepared(msg preparedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.err = msg.Err
		return s, nil
	}
	s.session = msg.Session
	s.syncChoice()

	err := s.session.Start(s.ctx, s.interval,
		func(remaining int) {
			select {
			case s.ticks <- remaining:
			default:
			}
		},
		func(res ex.Result) {
			select {
			case s.done <- res:
			default:
			}
		},
	)
	if err != nil {
		s.err = err
		return s, nil
	}
	return s, s.wait()
}

// wait blocks until the next tick or the end of the attempt.
func (s *ExamScreen) wait() tea.Cmd {
	ctx, ticks, done := s.ctx, s.ticks, s.done
	return func() tea.Msg {
		select {
		case res := <-done:
			return finishedMsg{Result: res}
		case n := <-ticks:
			return tickMsg{Remaining: n}
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *ExamScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.confirming {
		switch {
		case key.Matches(msg, s.keys.Confirm):
			s.confirming = false
			s.session.Finish()
		case key.Matches(msg, s.keys.Cancel):
			s.confirming = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Finish):
		s.confirming = true
	case key.Matches(msg, s.keys.Answer):
		if _, err := s.session.Answer(s.choice.SelectedID()); err != nil {
			return s, nil
		}
		if finished, err := s.session.Next(); err == nil && !finished {
			s.syncChoice()
		}
	default:
		s.choice = s.choice.Update(msg)
	}
	return s, nil
}

func (s *ExamScreen) syncChoice() {
	tq, _ := s.session.Current()
	s.choice = components.NewMultiChoice(tq.Question)
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return nil
	case s.session == nil:
		return layout.HintsFor(s.keys.Back)
	case s.confirming:
		return layout.HintsFor(s.keys.Confirm, s.keys.Cancel)
	}
	return append([]layout.KeyHint{{Key: "↑↓ 1-4", Description: "Auswählen"}},
		layout.HintsFor(s.keys.Answer, s.keys.Finish, s.keys.Back)...)
}
