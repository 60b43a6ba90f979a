package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Answer  key.Binding
	Next    key.Binding
	Refresh key.Binding
	Retry   key.Binding
	Reset   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Answer:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Antworten")),
		Next:    key.NewBinding(key.WithKeys("enter", "n", "space"), key.WithHelp("Enter", "Nächste Frage")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Erneut prüfen")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Erneut laden")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "Fortschritt löschen")),
		Confirm: key.NewBinding(key.WithKeys("y", "j"), key.WithHelp("y", "Ja, löschen")),
		Cancel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "Abbrechen")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Zurück")),
	}
}
