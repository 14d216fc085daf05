package shell

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case transitionFrameMsg:
		return m.handleTransitionFrame()
	case NavigateMsg:
		return m, m.Navigate(msg.Path)
	case LogoutSettledMsg:
		return m.handleLogoutSettled(msg)
	case SessionChangedMsg:
		return m.handleSessionChanged()
	case ConnectionChangedMsg:
		// State is read at render time; the message only forces a repaint.
		return m, nil
	default:
		return m, m.updateOutlet(msg)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	return m, nil
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.Loading() {
		m.spinning = false
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handleSessionChanged() (tea.Model, tea.Cmd) {
	if m.Loading() && !m.spinning {
		m.spinning = true
		return m, m.spinner.Tick
	}
	m.resize()
	return m, nil
}

func (m *Model) handleTransitionFrame() (tea.Model, tea.Cmd) {
	if m.advanceTransition() {
		m.animating = false
		return m, nil
	}
	return m, transitionFrame()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.Loading() {
		return m, nil
	}

	overlay := m.overlayVisible()
	switch {
	case key.Matches(msg, m.keys.Logout):
		return m, m.Logout()
	case key.Matches(msg, m.keys.Jump):
		if index := jumpIndex(msg.String()); index >= 0 {
			return m, m.Select(entries[index], overlay)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, m.Back(overlay)
	case key.Matches(msg, m.keys.Menu):
		if m.Wide() {
			return m, nil
		}
		return m, m.OpenSidebar()
	}

	if overlay {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.CloseSidebar()
		case key.Matches(msg, m.keys.Up):
			m.moveOverlayCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveOverlayCursor(1)
		case key.Matches(msg, m.keys.Select):
			return m, m.Select(entries[m.overlayCursor], true)
		}
		return m, nil
	}

	return m, m.updateOutlet(msg)
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Loading() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		if m.overlayVisible() {
			return m, nil
		}
		return m, m.updateOutlet(msg)
	}

	if m.overlayVisible() {
		for i, entry := range entries {
			if m.zones.Get(overlayEntryZone(i)).InBounds(msg) {
				return m, m.Select(entry, true)
			}
		}
		if m.zones.Get(zoneClose).InBounds(msg) || m.zones.Get(zoneBackdrop).InBounds(msg) {
			m.CloseSidebar()
		}
		return m, nil
	}

	switch {
	case m.zones.Get(zoneMenu).InBounds(msg):
		return m, m.OpenSidebar()
	case m.zones.Get(zoneLogout).InBounds(msg):
		return m, m.Logout()
	}
	if m.Wide() {
		for i, entry := range entries {
			if m.zones.Get(desktopEntryZone(i)).InBounds(msg) {
				return m, m.Select(entry, false)
			}
		}
	}
	return m, m.updateOutlet(msg)
}

func (m *Model) updateOutlet(msg tea.Msg) tea.Cmd {
	outlet := m.router.Outlet()
	if outlet == nil {
		return nil
	}
	return outlet.Update(msg)
}

// overlayVisible is true when the flag is set and the terminal is narrow.
func (m *Model) overlayVisible() bool {
	return m.sidebarOpen && !m.Wide()
}

const (
	zoneMenu     = "shell-menu"
	zoneLogout   = "shell-logout"
	zoneClose    = "shell-close"
	zoneBackdrop = "shell-backdrop"
)

func overlayEntryZone(i int) string { return fmt.Sprintf("shell-overlay-entry-%d", i) }
func desktopEntryZone(i int) string { return fmt.Sprintf("shell-desktop-entry-%d", i) }
