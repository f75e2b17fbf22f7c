package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	logout  key.Binding
	newItem key.Binding
	refresh key.Binding
	search  key.Binding
	edit    key.Binding
	save    key.Binding
	delete  key.Binding
	copy    key.Binding
	history key.Binding
	preview key.Binding
	restore key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("q")),
	logout:  key.NewBinding(key.WithKeys("l")),
	newItem: key.NewBinding(key.WithKeys("n")),
	refresh: key.NewBinding(key.WithKeys("r")),
	search:  key.NewBinding(key.WithKeys("/")),
	edit:    key.NewBinding(key.WithKeys("e")),
	save:    key.NewBinding(key.WithKeys("ctrl+s")),
	delete:  key.NewBinding(key.WithKeys("d")),
	copy:    key.NewBinding(key.WithKeys("c")),
	history: key.NewBinding(key.WithKeys("h")),
	preview: key.NewBinding(key.WithKeys("p", "enter")),
	restore: key.NewBinding(key.WithKeys("r")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n", "esc")),
}
