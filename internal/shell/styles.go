package shell

import "github.com/charmbracelet/lipgloss"

var (
	brandColor    = lipgloss.Color("63")
	activeBg      = lipgloss.Color("189")
	activeFg      = lipgloss.Color("17")
	backdropColor = lipgloss.Color("238")
	borderColor   = lipgloss.Color("250")

	brandStyle  = lipgloss.NewStyle().Foreground(brandColor).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	entryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeStyle = lipgloss.NewStyle().Foreground(activeFg).Background(activeBg).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("236"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	buttonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	backdropStyle = lipgloss.NewStyle().Foreground(backdropColor).Faint(true)
)
