package exam

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Answer  key.Binding
	Finish  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Answer:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Antworten")),
		Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Prüfung abgeben")),
		Confirm: key.NewBinding(key.WithKeys("y", "j"), key.WithHelp("y", "Ja, abgeben")),
		Cancel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "Weiter prüfen")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Abbrechen")),
	}
}
