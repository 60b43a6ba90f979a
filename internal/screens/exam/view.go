package exam

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/abhisek/sbfquiz/internal/exam"
	"github.com/abhisek/sbfquiz/internal/ui/components"
	"github.com/abhisek/sbfquiz/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.loading:
		return center.Foreground(theme.TextDim).Render("\n\nPrüfung wird zusammengestellt…")
	case s.err != nil:
		return center.Foreground(theme.Error).Render("\n\n" + errorText(s.err))
	case s.session == nil:
		return ""
	case s.confirming:
		return center.Render("\n\n" + theme.Warning.Render("Prüfung jetzt abgeben?") +
			"\n\n" + theme.Hint.Render(s.unansweredText()))
	}

	tq, i := s.session.Current()

	var b strings.Builder
	answered := i
	b.WriteString("  ")
	b.WriteString(components.ProgressBar{
		Label:   fmt.Sprintf("Frage %d von %d", i+1, s.session.Len()),
		Percent: answered * 100 / max(s.session.Len(), 1),
		Width:   width - 4,
	}.View())
	b.WriteString("\n  " + theme.Rule(width-4) + "\n\n")

	prompt := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 2).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(prompt.Render(tq.Prompt))
	b.WriteString("\n")
	if tq.Image != "" {
		b.WriteString("  " + theme.Hint.Render("Bild: "+tq.Image) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.choice.View(width))
	return b.String()
}

func (s *ExamScreen) unansweredText() string {
	_, i := s.session.Current()
	open := s.session.Len() - i
	if open == 1 {
		return "1 Frage ist noch offen und wird als falsch gewertet."
	}
	return fmt.Sprintf("%d Fragen sind noch offen und werden als falsch gewertet.", open)
}

func errorText(err error) string {
	var insufficient *ex.InsufficientQuestionsError
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("Zu wenige Fragen in %q: %d benötigt, %d vorhanden.",
			insufficient.CategoryID, insufficient.Need, insufficient.Have)
	}
	return "Prüfung konnte nicht gestartet werden.\n\n" + err.Error()
}
