package result

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sbfquiz/internal/catalog"
	"github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/router"
)

func TestView_PerCategory(t *testing.T) {
	cfg, err := catalog.LookupExam(catalog.SBFBinnen, "motor-segel")
	require.NoError(t, err)

	res := exam.Result{
		TotalCorrect: 5,
		PerCategory:  map[string]int{"basisfragen": 5},
		Answered:     27,
		Total:        37,
		Failed:       []string{"fragen-binnen", "fragen-segeln"},
	}
	s := New(catalog.SBFBinnen, cfg, res)
	view := s.View(100, 30)

	assert.Contains(t, view, "Nicht bestanden")
	assert.Contains(t, view, "5 von 37 Fragen richtig")
	assert.Contains(t, view, "10 Fragen unbeantwortet")
	assert.Contains(t, view, "Basisfragen")
	assert.Contains(t, view, "Spezifische Fragen Segeln")
}

func TestView_TotalRule(t *testing.T) {
	cfg := exam.Config{
		ID:      "t",
		Title:   "Test",
		Passing: exam.PassingRule{Kind: exam.Total, MinTotal: 2},
	}
	s := New("x", cfg, exam.Result{TotalCorrect: 2, Total: 2, Answered: 2, Passed: true})
	view := s.View(80, 24)
	assert.Contains(t, view, "Bestanden!")
	assert.Contains(t, view, "Mindestens 2")
	assert.Equal(t, "Test · Ergebnis", s.Title())
}

func TestKeys(t *testing.T) {
	s := New("x", exam.Config{Title: "Test"}, exam.Result{})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
