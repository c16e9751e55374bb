package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Jump    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Form    key.Binding
	Submit  key.Binding
	NextFld key.Binding
	PrevFld key.Binding
	Back    key.Binding
	Dismiss key.Binding
	Scroll  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "tabs")),
		Next:    key.NewBinding(key.WithKeys("right", "l")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump")),
		Top:     key.NewBinding(key.WithKeys("home", "g")),
		Bottom:  key.NewBinding(key.WithKeys("end", "G")),
		Form:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "contact form")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		NextFld: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFld: key.NewBinding(key.WithKeys("shift+tab")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Dismiss: key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("enter", "dismiss")),
		Scroll:  key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
	}
}

// browseHelp is shown while reading the page.
type browseHelp keyMap

func (k browseHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Jump, k.Form, k.Quit}
}

func (k browseHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// formHelp is shown while the contact form has focus.
type formHelp keyMap

func (k formHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFld, k.Submit, k.Back}
}

func (k formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
