package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/sbfquiz/internal/quiz"
	"github.com/abhisek/sbfquiz/internal/ui/components"
	"github.com/abhisek/sbfquiz/internal/ui/theme"
)

func formatMastered(p qz.Progress) string {
	return fmt.Sprintf("⚑ %d/%d", p.Mastered, p.Total)
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\nFragen werden geladen…")
}

func renderError(width int, err error) string {
	msg := "Fehler beim Laden der Fragen."
	if err != nil {
		msg += "\n\n" + err.Error()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n" + msg)
}

func renderConfirmReset(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + theme.Warning.Render("Gesamten Fortschritt dieser Kategorie löschen?") +
			"\n\n" + theme.Hint.Render("y = löschen, n = abbrechen"))
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.ctrl.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder
	p := s.ctrl.Progress()
	b.WriteString("  ")
	b.WriteString(components.ProgressBar{Label: "Gemeistert", Percent: p.Percent, Width: width - 4}.View())
	b.WriteString("\n")
	b.WriteString("  " + theme.Rule(width-4))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 2).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(prompt.Render(q.Prompt))
	b.WriteString("\n")
	if q.Image != "" {
		b.WriteString("  " + theme.Hint.Render("Bild: "+q.Image) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.choice.View(width))

	if out, ok := s.ctrl.LastOutcome(); ok && s.ctrl.Phase() == qz.PhaseAnswered {
		b.WriteString("\n")
		b.WriteString("  " + renderOutcome(out))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n  " + theme.Hint.Render(s.notice) + "\n")
	}
	return b.String()
}

func renderOutcome(out qz.Outcome) string {
	var verdict string
	if out.Correct {
		verdict = theme.Correct.Render("Richtig!")
	} else {
		verdict = theme.Incorrect.Render("Leider falsch.")
	}

	var detail string
	switch {
	case out.Mastered:
		detail = "Frage gemeistert."
	case out.Record.IntervalDays == 1:
		detail = "Wiederholung morgen."
	default:
		detail = fmt.Sprintf("Wiederholung in %d Tagen.", out.Record.IntervalDays)
	}
	return verdict + "  " + theme.Hint.Render(detail)
}

func (s *QuizScreen) renderFinished(width int) string {
	p := s.ctrl.Progress()
	var msg string
	switch s.ctrl.FinishReason() {
	case qz.Completed:
		msg = theme.Correct.Render("Alle Fragen gemeistert!") +
			"\n\n" + theme.Body.Render(fmt.Sprintf("%d von %d Fragen", p.Mastered, p.Total))
	case qz.Locked:
		due, _ := s.ctrl.NextDue()
		msg = theme.Warning.Render("Für heute ist alles geübt.") +
			"\n\n" + theme.Body.Render(fmt.Sprintf("%d von %d Fragen gemeistert (%d%%)", p.Mastered, p.Total, p.Percent)) +
			"\n" + theme.Hint.Render("Nächste Wiederholung: "+due.Local().Format("02.01.2006 15:04"))
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + msg)
}
