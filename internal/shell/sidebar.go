package shell

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type transitionFrameMsg struct{}

// SidebarOpen reports the overlay sidebar's visibility flag.
func (m *Model) SidebarOpen() bool {
	return m.sidebarOpen
}

// OpenSidebar shows the overlay sidebar and starts its slide-in.
func (m *Model) OpenSidebar() tea.Cmd {
	if m.sidebarOpen {
		return nil
	}
	m.sidebarOpen = true
	m.overlayCursor = m.activeIndex()
	if m.overlayCursor < 0 {
		m.overlayCursor = 0
	}
	if !m.animate {
		m.panelOffset = 0
		return nil
	}
	m.panelOffset = -float64(m.overlayWidth())
	m.panelVelocity = 0
	if m.animating {
		return nil
	}
	m.animating = true
	return transitionFrame()
}

// CloseSidebar hides the overlay sidebar.
func (m *Model) CloseSidebar() {
	m.sidebarOpen = false
	m.panelOffset = 0
	m.panelVelocity = 0
}

// unmount drops per-visit frame state. The frame is not shown on the login
// page, so whoever signs in next starts with the overlay closed.
func (m *Model) unmount() {
	m.CloseSidebar()
	m.overlayCursor = 0
	m.animating = false
}

// Select navigates to entry. Selections made from the overlay also close it.
func (m *Model) Select(entry Entry, fromOverlay bool) tea.Cmd {
	cmd := m.router.Navigate(entry.Path)
	if fromOverlay {
		m.CloseSidebar()
	}
	m.resize()
	return cmd
}

// Navigate moves to path on behalf of a page and sizes the new outlet.
func (m *Model) Navigate(path string) tea.Cmd {
	if path == LoginPath {
		m.unmount()
	}
	cmd := m.router.Navigate(path)
	m.resize()
	return cmd
}

// Back returns to the previous location. From the overlay it also closes it.
func (m *Model) Back(fromOverlay bool) tea.Cmd {
	cmd := m.router.Back()
	if fromOverlay {
		m.CloseSidebar()
	}
	m.resize()
	return cmd
}

func (m *Model) activeIndex() int {
	location := m.router.Location()
	for i, entry := range entries {
		if IsActive(entry, location) {
			return i
		}
	}
	return -1
}

func (m *Model) moveOverlayCursor(delta int) {
	m.overlayCursor += delta
	if m.overlayCursor < 0 {
		m.overlayCursor = 0
	}
	if m.overlayCursor >= len(entries) {
		m.overlayCursor = len(entries) - 1
	}
}

func (m *Model) overlayWidth() int {
	width := overlayMaxWidth
	if m.width > 0 && m.width-6 < width {
		width = m.width - 6
	}
	if width < 8 {
		width = 8
	}
	return width
}

// advanceTransition steps the spring one frame and reports whether it settled.
func (m *Model) advanceTransition() bool {
	if !m.sidebarOpen {
		return true
	}
	m.panelOffset, m.panelVelocity = m.spring.Update(m.panelOffset, m.panelVelocity, 0)
	if math.Abs(m.panelOffset) < 0.5 && math.Abs(m.panelVelocity) < 0.5 {
		m.panelOffset = 0
		m.panelVelocity = 0
		return true
	}
	return false
}

func transitionFrame() tea.Cmd {
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg {
		return transitionFrameMsg{}
	})
}
