package pages

import tea "github.com/charmbracelet/bubbletea"

// NotFound is mounted for locations with no route.
type NotFound struct {
	frame
	location string
}

func NewNotFound(location string) *NotFound {
	return &NotFound{location: location}
}

func (n *NotFound) Update(tea.Msg) tea.Cmd { return nil }

func (n *NotFound) View() string {
	return errorStyle.Render("Page not found: "+n.location) + "\n" +
		mutedStyle.Render("Pick a page from the menu, or alt+1 for the dashboard.")
}
