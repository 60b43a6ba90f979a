package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/sbfquiz/internal/question"
)

// Scheduler grades answers and decides which questions are open for practice.
// It holds no per-question state; callers own the ReviewMap.
type Scheduler struct {
	cfg Config
}

// New creates a Scheduler from cfg. Zero-value fields are filled with
// defaults; invalid values return ErrInvalidConfig.
func New(cfg Config) (*Scheduler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg}, nil
}

// Default returns a Scheduler using DefaultConfig.
func Default() *Scheduler {
	return &Scheduler{cfg: DefaultConfig()}
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Fresh returns the record assumed for a question that was never answered.
func (s *Scheduler) Fresh(now time.Time) Record {
	return Record{Ease: s.cfg.InitialEase, Due: now}
}

// Grade returns the record after answering a question. rec may be nil for
// a question without history. The input record is not mutated.
func (s *Scheduler) Grade(rec *Record, correct bool, now time.Time) Record {
	r := s.Fresh(now)
	if rec != nil {
		r = *rec
	}

	if correct {
		r.ConsecutiveCorrect++
		switch r.ConsecutiveCorrect {
		case 1:
			r.IntervalDays = FirstIntervalDays
		case 2:
			r.IntervalDays = SecondIntervalDays
		default:
			r.IntervalDays = int(math.Round(float64(r.IntervalDays) * r.Ease))
		}
		r.Ease = roundEase(r.Ease + s.cfg.EaseBonus)
	} else {
		switch s.cfg.OnIncorrect {
		case DecrementStreak:
			r.ConsecutiveCorrect = max(r.ConsecutiveCorrect-1, 0)
		default:
			r.ConsecutiveCorrect = 0
		}
		r.IntervalDays = FirstIntervalDays
	}

	if r.Ease < s.cfg.MinEase {
		r.Ease = s.cfg.MinEase
	}
	r.Due = now.AddDate(0, 0, r.IntervalDays)
	return r
}

// IsMastered reports whether the record reached the mastery threshold.
func (s *Scheduler) IsMastered(r Record) bool {
	return r.ConsecutiveCorrect >= s.cfg.MasteryThreshold
}

// IsOpen reports whether a question with record rec (nil when never
// answered) may be presented at now. Mastered questions are never open.
func (s *Scheduler) IsOpen(rec *Record, now time.Time) bool {
	if rec == nil {
		return true
	}
	if s.IsMastered(*rec) {
		return false
	}
	return s.cfg.IgnoreDue || rec.IsDue(now)
}

// OpenPool returns the ids of open questions, in question order.
func (s *Scheduler) OpenPool(questions []question.Question, reviews ReviewMap, now time.Time) []string {
	var open []string
	for i := range questions {
		id := questions[i].ID
		if s.IsOpen(reviews.Lookup(id), now) {
			open = append(open, id)
		}
	}
	return open
}

// MasteredCount returns how many of questions are mastered.
func (s *Scheduler) MasteredCount(questions []question.Question, reviews ReviewMap) int {
	n := 0
	for i := range questions {
		if r, ok := reviews[questions[i].ID]; ok && s.IsMastered(r) {
			n++
		}
	}
	return n
}

// NextDue returns the earliest due time among unmastered questions that
// have a record. ok is false when no such question exists.
func (s *Scheduler) NextDue(questions []question.Question, reviews ReviewMap) (next time.Time, ok bool) {
	for i := range questions {
		r, found := reviews[questions[i].ID]
		if !found || s.IsMastered(r) {
			continue
		}
		if !ok || r.Due.Before(next) {
			next = r.Due
			ok = true
		}
	}
	return next, ok
}

// roundEase keeps the easiness factor at two decimals so repeated bonuses
// do not accumulate float noise.
func roundEase(ef float64) float64 {
	return math.Round(ef*100) / 100
}
