package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sbfquiz/internal/question"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testQuestion() *question.Question {
	return &question.Question{
		ID:     "1",
		Prompt: "Was bedeutet ein weißes Funkellicht?",
		Options: []question.Option{
			{ID: "a", Text: "Gefahrenstelle", IsCorrect: true},
			{ID: "b", Text: "Fähre"},
			{ID: "c", Text: "Schleuse"},
		},
	}
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	if got := m.SelectedID(); got != "a" {
		t.Fatalf("initial SelectedID() = %q, want a", got)
	}

	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := m.SelectedID(); got != "c" {
		t.Errorf("after 3x down SelectedID() = %q, want c", got)
	}

	m = m.Update(keyPress('2'))
	if got := m.SelectedID(); got != "b" {
		t.Errorf("after '2' SelectedID() = %q, want b", got)
	}

	m = m.Update(keyPress('9'))
	if got := m.SelectedID(); got != "b" {
		t.Errorf("out of range digit moved cursor to %q", got)
	}
}

func TestMultiChoice_RevealFreezesCursor(t *testing.T) {
	m := NewMultiChoice(testQuestion()).Reveal("b")
	m = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("Selected = %d after reveal, want 0", m.Selected)
	}
	view := m.View(80)
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("revealed view lacks marks:\n%s", view)
	}
}

func TestMenu_SkipsHeadings(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Übung"},
		{Label: "Basisfragen", Action: func() tea.Cmd { called = "basis"; return nil }},
		{Label: "Prüfung"},
		{Label: "Motor", Action: func() tea.Cmd { called = "motor"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d after down, want 3", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "motor" {
		t.Errorf("called = %q, want motor", called)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	v := ProgressBar{Label: "x", Percent: 150, Width: 30}.View()
	if !strings.Contains(v, "100%") {
		t.Errorf("view = %q, want 100%%", v)
	}
}
