package exam

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sbfquiz/internal/bank"
)

var (
	// ErrFinished is returned for answers and navigation after the attempt ended.
	ErrFinished = errors.New("exam already finished")
	// ErrNotAnswered is returned by Next before the current question is answered.
	ErrNotAnswered = errors.New("current question not answered")
	// ErrUnknownOption is returned for an option id the question does not have.
	ErrUnknownOption = errors.New("unknown option")
	// ErrTimerRunning is returned by Start when a timer is already active.
	ErrTimerRunning = errors.New("exam timer already running")
)

// Outcome is the recorded answer to one question.
type Outcome struct {
	OptionID string
	Correct  bool
}

// Session is one exam attempt: sequential navigation, a countdown and a
// finish latch. It is safe for concurrent use by a timer goroutine and
// the user's event loop.
type Session struct {
	mu sync.Mutex

	id        string
	cfg       Config
	questions []TaggedQuestion
	answers   map[string]string
	current   int
	remaining int
	finished  bool
	result    Result
	startedAt time.Time

	timer    *Timer
	onFinish func(Result)
}

// NewSession starts an attempt over already composed questions.
func NewSession(cfg Config, questions []TaggedQuestion) *Session {
	return &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		questions: questions,
		answers:   make(map[string]string, len(questions)),
		remaining: cfg.DurationSeconds(),
		startedAt: time.Now(),
	}
}

// Prepare loads the required pools, composes an attempt and wraps it in a
// Session.
func Prepare(ctx context.Context, repo bank.Repository, licenseID string, cfg Config, rng *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pools, err := LoadPools(ctx, repo, licenseID, cfg)
	if err != nil {
		return nil, err
	}
	questions, err := Compose(cfg, pools, rng)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, questions), nil
}

// ID returns the attempt id.
func (s *Session) ID() string { return s.id }

// Config returns the exam configuration.
func (s *Session) Config() Config { return s.cfg }

// StartedAt returns when the attempt was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the current question and its index.
func (s *Session) Current() (TaggedQuestion, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.current], s.current
}

// Answered returns the recorded outcome for the current question.
func (s *Session) Answered() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcomeLocked(s.current)
}

func (s *Session) outcomeLocked(i int) (Outcome, bool) {
	tq := s.questions[i]
	chosen, ok := s.answers[tq.ID]
	if !ok {
		return Outcome{}, false
	}
	return Outcome{OptionID: chosen, Correct: tq.IsCorrect(chosen)}, true
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Finished reports whether the attempt has ended.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Result returns the evaluation once the attempt has ended.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.finished
}

// Answer records optionID for the current question. A question accepts
// one answer; later calls return the first outcome unchanged.
func (s *Session) Answer(optionID string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return Outcome{}, ErrFinished
	}
	if out, ok := s.outcomeLocked(s.current); ok {
		return out, nil
	}
	tq := s.questions[s.current]
	if tq.Option(optionID) == nil {
		return Outcome{}, ErrUnknownOption
	}
	s.answers[tq.ID] = optionID
	out, _ := s.outcomeLocked(s.current)
	return out, nil
}

// Next advances to the following question. On the last question it ends
// the attempt and reports finished.
func (s *Session) Next() (finished bool, err error) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return true, ErrFinished
	}
	if _, ok := s.outcomeLocked(s.current); !ok {
		s.mu.Unlock()
		return false, ErrNotAnswered
	}
	if s.current < len(s.questions)-1 {
		s.current++
		s.mu.Unlock()
		return false, nil
	}
	res, notify := s.finishLocked()
	s.mu.Unlock()
	notify(res)
	return true, nil
}

// Tick counts the countdown down by one second. Reaching zero ends the
// attempt. Ticks after the end are ignored.
func (s *Session) Tick() (remaining int, finished bool) {
	s.mu.Lock()
	if s.finished {
		defer s.mu.Unlock()
		return s.remaining, true
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		defer s.mu.Unlock()
		return s.remaining, false
	}
	res, notify := s.finishLocked()
	s.mu.Unlock()
	notify(res)
	return 0, true
}

// Finish ends the attempt and returns its result. Only the first call
// evaluates; later calls return the same result.
func (s *Session) Finish() Result {
	s.mu.Lock()
	if s.finished {
		defer s.mu.Unlock()
		return s.result
	}
	res, notify := s.finishLocked()
	s.mu.Unlock()
	notify(res)
	return res
}

// finishLocked latches the attempt, stops the timer and returns the
// finish callback to run after the lock is released.
func (s *Session) finishLocked() (Result, func(Result)) {
	s.finished = true
	s.result = Evaluate(s.cfg, s.questions, s.answers)
	if s.timer != nil {
		s.timer.Cancel()
	}
	if s.onFinish == nil {
		return s.result, func(Result) {}
	}
	return s.result, s.onFinish
}

// Start runs the countdown on a Timer ticking every interval. onTick
// receives the remaining seconds after each tick; onFinish runs once when
// the attempt ends by any path. Either callback may be nil.
func (s *Session) Start(ctx context.Context, interval time.Duration, onTick func(remaining int), onFinish func(Result)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrFinished
	}
	if s.timer != nil {
		return ErrTimerRunning
	}
	s.onFinish = onFinish
	s.timer = StartTimer(ctx, interval, func() bool {
		remaining, finished := s.Tick()
		if onTick != nil {
			onTick(remaining)
		}
		return !finished
	})
	return nil
}

// Stop cancels the countdown and waits for the timer to exit. The attempt
// stays open; call Finish to end it.
func (s *Session) Stop() {
	s.mu.Lock()
	t := s.timer
	s.mu.Unlock()
	if t == nil {
		return
	}
	t.Stop()

	s.mu.Lock()
	if s.timer == t {
		s.timer = nil
	}
	s.mu.Unlock()
}
