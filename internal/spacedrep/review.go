package spacedrep

import "time"

// Record holds the spaced repetition state for a single question.
type Record struct {
	ConsecutiveCorrect int
	Ease               float64
	IntervalDays       int
	Due                time.Time
}

// IsDue returns true if the question is due for review (at or past the due time).
func (r *Record) IsDue(now time.Time) bool {
	return !now.Before(r.Due)
}

// DaysUntilDue returns the number of whole days until the record is due,
// rounded up. Returns 0 if already due.
func (r *Record) DaysUntilDue(now time.Time) int {
	if r.IsDue(now) {
		return 0
	}
	return int(r.Due.Sub(now).Hours()/24.0) + 1
}

// ReviewMap maps question ids to review records for one quiz scope.
type ReviewMap map[string]Record

// Lookup returns a pointer to a copy of the record for id, or nil if the
// question has never been answered.
func (m ReviewMap) Lookup(id string) *Record {
	r, ok := m[id]
	if !ok {
		return nil
	}
	return &r
}

// Clone returns an independent copy of the map.
func (m ReviewMap) Clone() ReviewMap {
	out := make(ReviewMap, len(m))
	for id, r := range m {
		out[id] = r
	}
	return out
}
