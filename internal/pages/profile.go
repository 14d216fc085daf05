package pages

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Profile shows the signed-in user's account details.
type Profile struct {
	frame
	deps Deps
}

func NewProfile(deps Deps) *Profile {
	return &Profile{deps: deps}
}

func (p *Profile) Update(tea.Msg) tea.Cmd { return nil }

func (p *Profile) View() string {
	user := p.deps.User()
	if user == nil {
		return mutedStyle.Render("Not signed in.")
	}

	rows := [][2]string{
		{"Name", user.Name},
		{"Email", user.Email},
	}
	if user.StudentID != nil && *user.StudentID != "" {
		rows = append(rows, [2]string{"Student ID", *user.StudentID})
	}
	verified := "no"
	if user.IsVerified {
		verified = "yes"
	}
	rows = append(rows,
		[2]string{"Verified", verified},
		[2]string{"Learning streak", english.Plural(user.LearningStreak, "day", "days")},
		[2]string{"Friends", humanize.Comma(int64(len(user.Friends)))},
	)
	if len(user.StudyInterests) > 0 {
		rows = append(rows, [2]string{"Interests", strings.Join(user.StudyInterests, ", ")})
	}
	if !user.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Joined", humanize.RelTime(user.CreatedAt, p.deps.Now(), "ago", "from now")})
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(user.Name))
	b.WriteString("\n")
	if user.Bio != nil && *user.Bio != "" {
		b.WriteString(*user.Bio)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(labelStyle.Width(16).Render(row[0]))
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}
