package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize/english"

	"github.com/adamavenir/peerlearn/internal/types"
)

// Dashboard greets the user and lists their classrooms.
type Dashboard struct {
	frame
	deps       Deps
	classrooms *Loader[[]types.Classroom]
	cursor     int
}

func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{
		deps: deps,
		classrooms: NewLoader(deps.Context, func(ctx context.Context) ([]types.Classroom, error) {
			return deps.API.Classrooms(ctx)
		}),
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return d.classrooms.Load()
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	if d.classrooms.Update(msg) {
		d.cursor = moveCursor(d.cursor, 0, len(d.classrooms.Data()))
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	rooms := d.classrooms.Data()
	switch {
	case key.Matches(keyMsg, keys.Up):
		d.cursor = moveCursor(d.cursor, -1, len(rooms))
	case key.Matches(keyMsg, keys.Down):
		d.cursor = moveCursor(d.cursor, 1, len(rooms))
	case key.Matches(keyMsg, keys.Open):
		if d.cursor < len(rooms) {
			return navigate("/classroom/" + rooms[d.cursor].ID)
		}
	case key.Matches(keyMsg, keys.Reload):
		return d.classrooms.Load()
	}
	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder
	user := d.deps.User()
	name := ""
	if user != nil {
		name = user.Name
	}
	b.WriteString(headingStyle.Render(fmt.Sprintf("Welcome back, %s!", name)))
	b.WriteString("\n\n")

	if user != nil {
		streak := fmt.Sprintf("%d-day learning streak", user.LearningStreak)
		stats := []string{streak, english.Plural(len(user.Friends), "friend", "friends")}
		b.WriteString(mutedStyle.Render(strings.Join(stats, " · ")))
		b.WriteString("\n")
		if len(user.StudyInterests) > 0 {
			b.WriteString(labelStyle.Render("Studying:") + " " + strings.Join(user.StudyInterests, ", "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Your classrooms"))
	b.WriteString("\n")
	b.WriteString(d.classrooms.View(d.renderClassrooms))
	return b.String()
}

func (d *Dashboard) renderClassrooms(classrooms []types.Classroom) string {
	if len(classrooms) == 0 {
		return mutedStyle.Render("You haven't joined any classrooms yet.")
	}
	lines := make([]string, 0, len(classrooms))
	for i, c := range classrooms {
		members := mutedStyle.Render(english.Plural(len(c.Members), "member", "members"))
		name := "  " + c.Name
		if i == d.cursor {
			name = cursorStyle.Render("› " + c.Name)
		}
		lines = append(lines, name+"  "+members)
	}
	return strings.Join(lines, "\n")
}
