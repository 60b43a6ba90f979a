package spacedrep

import (
	"testing"
	"time"

	"github.com/abhisek/sbfquiz/internal/store"
)

func TestSnapshotRoundTrip_SameOpenPool(t *testing.T) {
	s := Default()
	qs := questions("a", "b", "c", "d")

	reviews := ReviewMap{}
	r := s.Grade(nil, true, t0)
	reviews["a"] = r
	r = s.Grade(&r, true, t0)
	r = s.Grade(&r, true, t0)
	reviews["b"] = r
	reviews["c"] = s.Grade(nil, false, t0.Add(-36*time.Hour))
	// Sub-second due times must survive the round trip.
	reviews["d"] = Record{Ease: 2.5, IntervalDays: 1, Due: t0.Add(500 * time.Millisecond)}

	raw, err := store.EncodeProgress(&store.ProgressData{Reviews: reviews.SnapshotData()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data, err := store.DecodeProgress(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	restored := s.LoadReviewMap(data.Reviews)

	for _, now := range []time.Time{t0, t0.Add(200 * time.Millisecond), t0.AddDate(0, 0, 1), t0.AddDate(0, 1, 0)} {
		want := s.OpenPool(qs, reviews, now)
		got := s.OpenPool(qs, restored, now)
		if len(got) != len(want) {
			t.Fatalf("now=%v: OpenPool = %v, want %v", now, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("now=%v: OpenPool[%d] = %q, want %q", now, i, got[i], want[i])
			}
		}
	}

	got, want := restored["b"], reviews["b"]
	if got.ConsecutiveCorrect != want.ConsecutiveCorrect || got.Ease != want.Ease ||
		got.IntervalDays != want.IntervalDays || !got.Due.Equal(want.Due) {
		t.Errorf("restored b = %+v, want %+v", got, want)
	}
}

func TestLoadReviewMap_Tolerant(t *testing.T) {
	s := Default()
	data := map[string]*store.ReviewData{
		"ok":       {ConsecutiveCorrect: 1, Ease: 2.6, IntervalDays: 1, Due: "2025-01-02T12:00:00Z"},
		"bad-due":  {ConsecutiveCorrect: 1, Ease: 2.6, IntervalDays: 1, Due: "tomorrow"},
		"low-ease": {ConsecutiveCorrect: -2, Ease: 0.4, IntervalDays: -1, Due: "2025-01-02T12:00:00Z"},
		"nil":      nil,
	}

	m := s.LoadReviewMap(data)

	if len(m) != 2 {
		t.Fatalf("len = %d, want 2", len(m))
	}
	if _, ok := m["bad-due"]; ok {
		t.Error("entry with unparsable due should be skipped")
	}
	low := m["low-ease"]
	if low.Ease != DefaultMinEase {
		t.Errorf("Ease = %v, want clamped to %v", low.Ease, DefaultMinEase)
	}
	if low.ConsecutiveCorrect != 0 || low.IntervalDays != 0 {
		t.Errorf("negative fields not clamped: %+v", low)
	}
}

func TestMigrateLegacy(t *testing.T) {
	s := Default()
	qs := questions("a", "b", "c")

	m := s.MigrateLegacy(map[string]bool{"a": true, "b": false}, t0)

	if !s.IsMastered(m["a"]) {
		t.Error("legacy correct answer should migrate to mastered")
	}
	if s.IsMastered(m["b"]) {
		t.Error("legacy wrong answer should not be mastered")
	}

	got := s.OpenPool(qs, m, t0)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("OpenPool = %v, want [b c]", got)
	}
}
