package shell

import "github.com/charmbracelet/lipgloss"

var (
	positiveColor = lipgloss.Color("42")
	negativeColor = lipgloss.Color("203")
)

// Indicator is the connection dot and label.
type Indicator struct {
	Label    string
	Color    lipgloss.Color
	Positive bool
}

// IndicatorFor maps the connection flag straight to its presentation.
func IndicatorFor(connected bool) Indicator {
	if connected {
		return Indicator{Label: "Connected", Color: positiveColor, Positive: true}
	}
	return Indicator{Label: "Disconnected", Color: negativeColor}
}

func (i Indicator) render() string {
	dot := lipgloss.NewStyle().Foreground(i.Color).Render("●")
	return dot + " " + mutedStyle.Render(i.Label)
}
