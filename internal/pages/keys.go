package pages

import "github.com/charmbracelet/bubbles/key"

type pageKeys struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Reload  key.Binding
	Accept  key.Binding
	Decline key.Binding
}

var keys = pageKeys{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Open:    key.NewBinding(key.WithKeys("enter")),
	Reload:  key.NewBinding(key.WithKeys("r")),
	Accept:  key.NewBinding(key.WithKeys("a")),
	Decline: key.NewBinding(key.WithKeys("d")),
}

// moveCursor clamps cursor+delta to [0, n).
func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
