package shell

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) View() string {
	session := m.session.Session()
	if session.IsLoading {
		return m.renderLoading()
	}

	var output string
	if m.Wide() {
		sidebar := m.renderDesktopSidebar(session)
		output = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.renderMain())
	} else if m.sidebarOpen {
		output = m.renderOverlay()
	} else {
		output = m.renderMain()
	}
	return m.zones.Scan(output)
}

func (m *Model) renderLoading() string {
	if m.width == 0 || m.height == 0 {
		return m.spinner.View()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View())
}

func (m *Model) renderMain() string {
	width := m.mainWidth()
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTopBar(width), m.renderContent(width))
}

func (m *Model) renderTopBar(width int) string {
	var left []string
	if !m.Wide() {
		left = append(left, m.zones.Mark(zoneMenu, buttonStyle.Render("☰")))
	}
	if title, ok := Title(m.router.Location()); ok {
		left = append(left, titleStyle.Render(title))
	}

	logout := m.zones.Mark(zoneLogout, buttonStyle.Render("⇥ Logout"))
	right := IndicatorFor(m.connection.Connected()).render() + "   " + logout

	line := alignBar(" "+strings.Join(left, "  "), right+" ", width)
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(borderColor)
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(line)
}

func (m *Model) renderContent(width int) string {
	body := ""
	if outlet := m.router.Outlet(); outlet != nil {
		body = outlet.View()
	}
	contentWidth, contentHeight := m.contentSize()
	if width <= 0 {
		return body
	}
	container := lipgloss.NewStyle().
		Width(contentWidth).
		MaxWidth(contentWidth).
		Render(body)
	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(width).
		Height(contentHeight + 2).
		Render(lipgloss.PlaceHorizontal(width-4, lipgloss.Center, container))
}

func (m *Model) renderBrand() string {
	return brandStyle.Render("◆ PeerLearn")
}

func (m *Model) renderEntries(width int, zoneFor func(int) string, cursor int) []string {
	location := m.router.Location()
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		label := truncate(entry.Icon+"  "+entry.Label, width-2)
		marker := " "
		if i == cursor {
			marker = "›"
		}
		line := entryStyleFor(IsActive(entry, location), i == cursor).Width(width).Render(marker + label)
		lines = append(lines, m.zones.Mark(zoneFor(i), line))
	}
	return lines
}

// entryStyleFor keeps the active highlight under the cursor; the cursor
// shows as a marker there instead.
func entryStyleFor(active, cursor bool) lipgloss.Style {
	switch {
	case active:
		return activeStyle
	case cursor:
		return cursorStyle
	default:
		return entryStyle
	}
}

func (m *Model) renderDesktopSidebar(session Session) string {
	width := m.sidebarWidth - 1 // right border
	lines := []string{"", " " + m.renderBrand(), ""}
	lines = append(lines, m.renderEntries(width, desktopEntryZone, -1)...)

	var name, email string
	if session.User != nil {
		name, email = session.User.Name, session.User.Email
	}
	footer := []string{
		mutedStyle.Render(strings.Repeat("─", width)),
		" " + userStyle.Render(truncate(name, width-2)),
		" " + mutedStyle.Render(truncate(email, width-2)),
	}

	for m.height > 0 && len(lines)+len(footer) < m.height {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)

	return lipgloss.NewStyle().
		Width(width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(borderColor).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderOverlay() string {
	panelWidth := m.overlayWidth()
	header := alignBar(" "+m.renderBrand(), m.zones.Mark(zoneClose, buttonStyle.Render("✕"))+" ", panelWidth)
	lines := []string{"", header, ""}
	lines = append(lines, m.renderEntries(panelWidth, overlayEntryZone, m.overlayCursor)...)
	for m.height > 0 && len(lines) < m.height {
		lines = append(lines, "")
	}
	panel := lipgloss.NewStyle().Width(panelWidth).Render(strings.Join(lines, "\n"))

	// Slide-in: reveal the panel from its left edge as the offset reaches zero.
	visible := panelWidth + int(math.Round(m.panelOffset))
	if visible < panelWidth {
		if visible < 0 {
			visible = 0
		}
		rows := strings.Split(panel, "\n")
		for i, row := range rows {
			rows[i] = ansi.Truncate(row, visible, "")
		}
		panel = strings.Join(rows, "\n")
	}

	backdropWidth := m.width - lipgloss.Width(panel)
	if backdropWidth < 0 {
		backdropWidth = 0
	}
	height := m.height
	if height < lipgloss.Height(panel) {
		height = lipgloss.Height(panel)
	}
	if backdropWidth == 0 {
		return panel
	}
	backdrop := m.renderBackdrop(lipgloss.Width(panel), backdropWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, panel, m.zones.Mark(zoneBackdrop, backdrop))
}

// renderBackdrop dims the part of the page the panel does not cover.
func (m *Model) renderBackdrop(offset, width, height int) string {
	rows := strings.Split(ansi.Strip(m.renderMain()), "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	rows = rows[:height]
	style := backdropStyle.Width(width).MaxWidth(width)
	for i, row := range rows {
		rows[i] = style.Render(ansi.Cut(row, offset, offset+width))
	}
	return strings.Join(rows, "\n")
}

func alignBar(left, right string, width int) string {
	if width <= 0 {
		return left + "  " + right
	}
	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	if leftWidth+rightWidth+1 > width {
		return left
	}
	return left + strings.Repeat(" ", width-leftWidth-rightWidth) + right
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
