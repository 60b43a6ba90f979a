// Package quiz drives a practice quiz over one license category, choosing
// questions from the spaced-repetition open pool and persisting progress
// after every answer.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sbfquiz/internal/bank"
	"github.com/abhisek/sbfquiz/internal/question"
	"github.com/abhisek/sbfquiz/internal/spacedrep"
	"github.com/abhisek/sbfquiz/internal/store"
)

var (
	// ErrInvalidPhase is returned when an operation is not allowed in the current phase.
	ErrInvalidPhase = errors.New("operation not allowed in current phase")
	// ErrUnknownOption is returned for an option id the current question does not have.
	ErrUnknownOption = errors.New("unknown option")
)

// Options configures a Controller. Repo and Progress are required.
type Options struct {
	Repo      bank.Repository
	Progress  store.ProgressRepo
	Scheduler *spacedrep.Scheduler // nil → spacedrep.Default()
	Rand      *rand.Rand           // nil → randomly seeded
	Now       func() time.Time     // nil → time.Now
	Logger    *slog.Logger         // nil → slog.Default()
}

// Outcome is the feedback for an answered question.
type Outcome struct {
	QuestionID      string
	OptionID        string
	Correct         bool
	CorrectOptionID string
	Record          spacedrep.Record
	Mastered        bool
}

// Controller is the state machine of one practice quiz. It is not safe
// for concurrent use; drive it from a single event loop.
type Controller struct {
	scope  store.Scope
	id     string
	repo   bank.Repository
	store  store.ProgressRepo
	sched  *spacedrep.Scheduler
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger

	phase     Phase
	questions []question.Question
	index     map[string]int
	reviews   spacedrep.ReviewMap
	answers   map[string]string
	current   string
	outcome   *Outcome
	reason    FinishReason
	nextDue   time.Time
	err       error
}

// New creates a Controller in PhaseLoading.
func New(scope store.Scope, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = spacedrep.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	id := uuid.NewString()
	return &Controller{
		scope:   scope,
		id:      id,
		repo:    bank.Checked(opts.Repo),
		store:   opts.Progress,
		sched:   opts.Scheduler,
		rng:     opts.Rand,
		now:     opts.Now,
		logger:  opts.Logger.With("scope", scope.String(), "session", id),
		phase:   PhaseLoading,
		reviews: make(spacedrep.ReviewMap),
		answers: make(map[string]string),
	}
}

// Load fetches the question bank, restores persisted progress and selects
// the first question. A load failure moves the quiz to PhaseError and is
// returned; it is not retried.
func (c *Controller) Load(ctx context.Context) error {
	if c.phase != PhaseLoading && c.phase != PhaseError {
		return fmt.Errorf("%w: load in %s", ErrInvalidPhase, c.phase)
	}
	c.phase = PhaseLoading
	c.err = nil

	qs, err := c.repo.Questions(ctx, c.scope.LicenseID, c.scope.CategoryID)
	if err != nil {
		c.phase = PhaseError
		c.err = err
		c.logger.Error("load questions", "error", err)
		return err
	}
	c.questions = qs
	c.index = question.Index(qs)

	c.restore(ctx)
	c.selectQuestion(c.current, false)
	c.logger.Debug("quiz loaded",
		"questions", len(qs),
		"reviews", len(c.reviews),
		"phase", c.phase.String(),
	)
	return nil
}

// restore reads the persisted snapshot. Missing, unreadable or malformed
// snapshots start the quiz from empty state.
func (c *Controller) restore(ctx context.Context) {
	c.reviews = make(spacedrep.ReviewMap)
	c.answers = make(map[string]string)
	c.current = ""

	raw, err := c.store.Get(ctx, c.scope)
	if err != nil {
		c.logger.Warn("read progress, starting empty", "error", err)
		return
	}
	if raw == nil {
		return
	}
	data, err := store.DecodeProgress(raw)
	if err != nil {
		c.logger.Warn("discarding progress snapshot", "error", err)
		return
	}

	if data.IsLegacy() {
		c.reviews = c.sched.MigrateLegacy(data.CorrectMap, c.now())
		c.logger.Info("migrated legacy progress", "questions", len(c.reviews))
	} else {
		c.reviews = c.sched.LoadReviewMap(data.Reviews)
	}
	for id, opt := range data.Answers {
		c.answers[id] = opt
	}
	if _, ok := c.index[data.Current]; ok {
		c.current = data.Current
	}
}

// selectQuestion picks the next current question from the open pool. With
// exclude unset, prev stays current while it is open; with exclude set,
// prev is only chosen when it is the sole open question.
func (c *Controller) selectQuestion(prev string, exclude bool) {
	c.phase = PhaseSelecting
	c.outcome = nil

	now := c.now()
	pool := c.sched.OpenPool(c.questions, c.reviews, now)
	if len(pool) == 0 {
		c.finish()
		return
	}

	candidates := pool
	prevOpen := false
	if prev != "" {
		candidates = make([]string, 0, len(pool))
		for _, id := range pool {
			if id == prev {
				prevOpen = true
				continue
			}
			candidates = append(candidates, id)
		}
	}

	switch {
	case prevOpen && !exclude:
		c.current = prev
	case len(candidates) == 0:
		c.current = prev
	default:
		c.current = candidates[c.rng.IntN(len(candidates))]
	}
	c.reason = NotFinished
	c.nextDue = time.Time{}
	c.phase = PhasePresenting
}

func (c *Controller) finish() {
	c.phase = PhaseFinished
	c.current = ""
	if next, ok := c.sched.NextDue(c.questions, c.reviews); ok {
		c.reason = Locked
		c.nextDue = next
	} else {
		c.reason = Completed
		c.nextDue = time.Time{}
	}
	c.logger.Info("quiz finished", "reason", c.reason.String())
}

// Answer grades optionID for the current question and persists progress.
// In PhaseAnswered it returns the recorded outcome without side effects.
func (c *Controller) Answer(ctx context.Context, optionID string) (Outcome, error) {
	switch c.phase {
	case PhaseAnswered:
		return *c.outcome, nil
	case PhasePresenting:
	default:
		return Outcome{}, fmt.Errorf("%w: answer in %s", ErrInvalidPhase, c.phase)
	}

	q := c.Current()
	if q.Option(optionID) == nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownOption, optionID)
	}

	correct := q.IsCorrect(optionID)
	rec := c.sched.Grade(c.reviews.Lookup(q.ID), correct, c.now())
	c.reviews[q.ID] = rec
	c.answers[q.ID] = optionID

	out := Outcome{
		QuestionID: q.ID,
		OptionID:   optionID,
		Correct:    correct,
		Record:     rec,
		Mastered:   c.sched.IsMastered(rec),
	}
	if co := q.CorrectOption(); co != nil {
		out.CorrectOptionID = co.ID
	}
	c.outcome = &out
	c.phase = PhaseAnswered

	c.persist(ctx)
	return out, nil
}

// Next moves on from an answered question. It finishes the quiz when the
// open pool is empty.
func (c *Controller) Next(ctx context.Context) error {
	if c.phase != PhaseAnswered {
		return fmt.Errorf("%w: next in %s", ErrInvalidPhase, c.phase)
	}
	c.selectQuestion(c.current, true)
	c.persist(ctx)
	return nil
}

// Refresh re-evaluates a finished quiz, reopening it once locked
// questions have become due.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.phase != PhaseFinished {
		return fmt.Errorf("%w: refresh in %s", ErrInvalidPhase, c.phase)
	}
	c.selectQuestion("", false)
	if c.phase == PhasePresenting {
		c.persist(ctx)
	}
	return nil
}

// Reset deletes persisted progress and returns the quiz to PhaseLoading.
// In-memory state is cleared even if the delete fails.
func (c *Controller) Reset(ctx context.Context) error {
	err := c.store.Delete(ctx, c.scope)

	c.phase = PhaseLoading
	c.questions = nil
	c.index = nil
	c.reviews = make(spacedrep.ReviewMap)
	c.answers = make(map[string]string)
	c.current = ""
	c.outcome = nil
	c.reason = NotFinished
	c.nextDue = time.Time{}
	c.err = nil

	if err != nil {
		c.logger.Warn("delete progress", "error", err)
		return fmt.Errorf("reset progress: %w", err)
	}
	c.logger.Info("progress reset")
	return nil
}

// persist writes the snapshot. Failures are logged and not retried.
func (c *Controller) persist(ctx context.Context) {
	raw, err := store.EncodeProgress(&store.ProgressData{
		Reviews: c.reviews.SnapshotData(),
		Current: c.current,
		Answers: c.answers,
	})
	if err != nil {
		c.logger.Warn("encode progress", "error", err)
		return
	}
	if err := c.store.Put(ctx, c.scope, raw); err != nil {
		c.logger.Warn("save progress", "error", err)
	}
}

// Scope returns the quiz scope.
func (c *Controller) Scope() store.Scope { return c.scope }

// ID returns the session id used in log records.
func (c *Controller) ID() string { return c.id }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Err returns the load error while in PhaseError.
func (c *Controller) Err() error { return c.err }

// Questions returns the loaded question bank.
func (c *Controller) Questions() []question.Question { return c.questions }

// Current returns the current question, or nil when there is none.
func (c *Controller) Current() *question.Question {
	i, ok := c.index[c.current]
	if !ok || c.current == "" {
		return nil
	}
	return &c.questions[i]
}

// LastOutcome returns the outcome shown in PhaseAnswered.
func (c *Controller) LastOutcome() (Outcome, bool) {
	if c.outcome == nil {
		return Outcome{}, false
	}
	return *c.outcome, true
}

// FinishReason tells why the quiz finished.
func (c *Controller) FinishReason() FinishReason { return c.reason }

// NextDue returns when the earliest locked question reopens.
func (c *Controller) NextDue() (time.Time, bool) {
	return c.nextDue, c.reason == Locked
}

// Progress is the mastered share of the question bank.
type Progress struct {
	Mastered int
	Total    int
	Percent  int
}

// Stats extends Progress with the open pool breakdown.
type Stats struct {
	Progress
	Open    int
	Locked  int
	Unseen  int
	NextDue time.Time
}

// Progress returns mastered/total and the rounded percentage in [0, 100].
func (c *Controller) Progress() Progress {
	p := Progress{
		Mastered: c.sched.MasteredCount(c.questions, c.reviews),
		Total:    len(c.questions),
	}
	p.Percent = percent(p.Mastered, p.Total)
	return p
}

// Stats returns Progress plus open, locked and unseen counts at the
// current time.
func (c *Controller) Stats() Stats {
	now := c.now()
	s := Stats{Progress: c.Progress()}
	for i := range c.questions {
		rec := c.reviews.Lookup(c.questions[i].ID)
		switch {
		case rec == nil:
			s.Unseen++
			s.Open++
		case c.sched.IsMastered(*rec):
		case c.sched.IsOpen(rec, now):
			s.Open++
		default:
			s.Locked++
		}
	}
	s.NextDue, _ = c.sched.NextDue(c.questions, c.reviews)
	return s
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(n) * 100 / float64(total)))
	return max(0, min(100, p))
}
