package shell

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Menu   key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Jump   key.Binding
	Back   key.Binding
	Logout key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Menu:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "menu")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Jump:   key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"), key.WithHelp("alt+1…5", "go to")),
		Back:   key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "back")),
		Logout: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "logout")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// jumpIndex maps alt+N to an entry index.
func jumpIndex(k string) int {
	if len(k) != len("alt+1") {
		return -1
	}
	n := int(k[len(k)-1] - '1')
	if n < 0 || n >= len(entries) {
		return -1
	}
	return n
}
