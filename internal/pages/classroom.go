package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/adamavenir/peerlearn/internal/types"
)

// Classroom shows one classroom and its rooms.
type Classroom struct {
	frame
	deps      Deps
	id        string
	classroom *Loader[*types.Classroom]
}

func NewClassroom(deps Deps, id string) *Classroom {
	return &Classroom{
		deps: deps,
		id:   id,
		classroom: NewLoader(deps.Context, func(ctx context.Context) (*types.Classroom, error) {
			return deps.API.Classroom(ctx, id)
		}),
	}
}

func (c *Classroom) ID() string { return c.id }

func (c *Classroom) Init() tea.Cmd {
	return c.classroom.Load()
}

func (c *Classroom) Update(msg tea.Msg) tea.Cmd {
	if c.classroom.Update(msg) {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Reload) {
		return c.classroom.Load()
	}
	return nil
}

func (c *Classroom) View() string {
	return c.classroom.View(c.render)
}

func (c *Classroom) render(classroom *types.Classroom) string {
	if classroom == nil {
		return mutedStyle.Render("Classroom not found.")
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(classroom.Name))
	b.WriteString("\n")
	if classroom.Description != nil && *classroom.Description != "" {
		b.WriteString(*classroom.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Members:") + " " + humanize.Comma(int64(len(classroom.Members))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Invite code:") + " " + classroom.InviteCode)
	b.WriteString("\n")
	if !classroom.CreatedAt.IsZero() {
		b.WriteString(labelStyle.Render("Created:") + " " + humanize.RelTime(classroom.CreatedAt, c.deps.Now(), "ago", "from now"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Rooms"))
	b.WriteString("\n")
	if len(classroom.Rooms) == 0 {
		b.WriteString(mutedStyle.Render("No rooms yet."))
		return b.String()
	}
	for _, room := range classroom.Rooms {
		line := fmt.Sprintf("# %s", room.Name)
		if room.Description != nil && *room.Description != "" {
			line += "  " + mutedStyle.Render(*room.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
