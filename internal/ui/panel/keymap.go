package panel

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up     key.Binding
	down   key.Binding
	toggle key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k")),
		down:   key.NewBinding(key.WithKeys("down", "j")),
		toggle: key.NewBinding(key.WithKeys(" ", "enter")),
		quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}
