package spacedrep

import (
	"time"

	"github.com/abhisek/sbfquiz/internal/store"
)

// LoadReviewMap rebuilds a ReviewMap from persisted data. Entries with an
// unparsable due time are skipped; out-of-range numbers are clamped.
func (s *Scheduler) LoadReviewMap(data map[string]*store.ReviewData) ReviewMap {
	m := make(ReviewMap, len(data))
	for id, rd := range data {
		if rd == nil {
			continue
		}
		due, err := time.Parse(time.RFC3339Nano, rd.Due)
		if err != nil {
			continue
		}
		r := Record{
			ConsecutiveCorrect: max(rd.ConsecutiveCorrect, 0),
			Ease:               rd.Ease,
			IntervalDays:       max(rd.IntervalDays, 0),
			Due:                due,
		}
		if r.Ease < s.cfg.MinEase {
			r.Ease = s.cfg.MinEase
		}
		m[id] = r
	}
	return m
}

// SnapshotData exports the map for persistence.
func (m ReviewMap) SnapshotData() map[string]*store.ReviewData {
	data := make(map[string]*store.ReviewData, len(m))
	for id, r := range m {
		data[id] = &store.ReviewData{
			ConsecutiveCorrect: r.ConsecutiveCorrect,
			Ease:               r.Ease,
			IntervalDays:       r.IntervalDays,
			Due:                r.Due.Format(time.RFC3339Nano),
		}
	}
	return data
}

// MigrateLegacy creates review records from a snapshot that only recorded
// whether each question was last answered correctly. Correct answers
// become mastered records so they stay out of the open pool; incorrect
// ones are due immediately.
func (s *Scheduler) MigrateLegacy(correctMap map[string]bool, now time.Time) ReviewMap {
	m := make(ReviewMap, len(correctMap))
	for id, correct := range correctMap {
		r := s.Fresh(now)
		if correct {
			r.ConsecutiveCorrect = s.cfg.MasteryThreshold
			r.IntervalDays = FirstIntervalDays
			r.Due = now.AddDate(0, 0, FirstIntervalDays)
		}
		m[id] = r
	}
	return m
}
