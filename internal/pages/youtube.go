package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/types"
)

// YouTube lists summarized videos and renders the selected summary.
type YouTube struct {
	frame
	deps     Deps
	sessions *Loader[[]types.YouTubeSession]
	cursor   int

	renderer      *glamour.TermRenderer
	rendererWidth int
}

func NewYouTube(deps Deps) *YouTube {
	return &YouTube{
		deps: deps,
		sessions: NewLoader(deps.Context, func(ctx context.Context) ([]types.YouTubeSession, error) {
			return deps.API.YouTubeSessions(ctx)
		}),
	}
}

func (y *YouTube) Init() tea.Cmd {
	return y.sessions.Load()
}

func (y *YouTube) Update(msg tea.Msg) tea.Cmd {
	if y.sessions.Update(msg) {
		y.cursor = moveCursor(y.cursor, 0, len(y.sessions.Data()))
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	n := len(y.sessions.Data())
	switch {
	case key.Matches(keyMsg, keys.Up):
		y.cursor = moveCursor(y.cursor, -1, n)
	case key.Matches(keyMsg, keys.Down):
		y.cursor = moveCursor(y.cursor, 1, n)
	case key.Matches(keyMsg, keys.Reload):
		return y.sessions.Load()
	}
	return nil
}

func (y *YouTube) View() string {
	return y.sessions.View(y.render)
}

func (y *YouTube) render(sessions []types.YouTubeSession) string {
	if len(sessions) == 0 {
		return mutedStyle.Render("No summaries yet. Summarize a video on the web to see it here.")
	}

	var b strings.Builder
	for i, s := range sessions {
		when := mutedStyle.Render(humanize.RelTime(s.CreatedAt, y.deps.Now(), "ago", "from now"))
		title := "  " + s.Title()
		if i == y.cursor {
			title = cursorStyle.Render("› " + s.Title())
		}
		b.WriteString(title + "  " + when + "\n")
	}
	b.WriteString("\n")
	b.WriteString(y.renderDetail(sessions[y.cursor]))
	return b.String()
}

func (y *YouTube) renderDetail(s types.YouTubeSession) string {
	var header []string
	header = append(header, headingStyle.Render(s.Title()))
	meta := []string{s.VideoURL}
	if s.VideoDuration != nil {
		meta = append(meta, formatDuration(time.Duration(*s.VideoDuration)*time.Second))
	}
	if n := len(s.ChatHistory); n > 0 {
		meta = append(meta, english.Plural(n, "chat message", "chat messages"))
	}
	header = append(header, mutedStyle.Render(strings.Join(meta, " · ")))

	summary := ""
	switch {
	case s.DetailedSummary != nil && *s.DetailedSummary != "":
		summary = *s.DetailedSummary
	case s.ShortSummary != nil && *s.ShortSummary != "":
		summary = *s.ShortSummary
	}
	if summary == "" {
		return strings.Join(header, "\n") + "\n\n" + mutedStyle.Render("Summary not ready yet.")
	}
	return strings.Join(header, "\n") + "\n" + y.markdown(summary)
}

func (y *YouTube) markdown(source string) string {
	width := y.width
	if width <= 0 {
		width = 80
	}
	if y.renderer == nil || y.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			y.deps.Logger.Warn("markdown renderer", zap.Error(err))
			return source
		}
		y.renderer, y.rendererWidth = r, width
	}
	out, err := y.renderer.Render(source)
	if err != nil {
		y.deps.Logger.Warn("render summary", zap.Error(err))
		return source
	}
	return strings.TrimRight(out, "\n")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
