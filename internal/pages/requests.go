package pages

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/types"
)

type respondedMsg struct {
	id     string
	accept bool
	err    error
}

// FriendRequests lists pending requests and lets the user answer them.
type FriendRequests struct {
	frame
	deps     Deps
	requests *Loader[[]types.FriendRequest]
	cursor   int
	pending  string
	status   string
	failed   bool
}

func NewFriendRequests(deps Deps) *FriendRequests {
	return &FriendRequests{
		deps: deps,
		requests: NewLoader(deps.Context, func(ctx context.Context) ([]types.FriendRequest, error) {
			return deps.API.FriendRequests(ctx)
		}),
	}
}

func (p *FriendRequests) Init() tea.Cmd {
	return p.requests.Load()
}

func (p *FriendRequests) Update(msg tea.Msg) tea.Cmd {
	if p.requests.Update(msg) {
		p.cursor = moveCursor(p.cursor, 0, len(p.requests.Data()))
		return nil
	}
	switch msg := msg.(type) {
	case respondedMsg:
		p.handleResponded(msg)
		return nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *FriendRequests) handleKey(msg tea.KeyMsg) tea.Cmd {
	requests := p.requests.Data()
	switch {
	case key.Matches(msg, keys.Up):
		p.cursor = moveCursor(p.cursor, -1, len(requests))
	case key.Matches(msg, keys.Down):
		p.cursor = moveCursor(p.cursor, 1, len(requests))
	case key.Matches(msg, keys.Reload):
		return p.requests.Load()
	case key.Matches(msg, keys.Accept):
		return p.respond(true)
	case key.Matches(msg, keys.Decline):
		return p.respond(false)
	}
	return nil
}

func (p *FriendRequests) respond(accept bool) tea.Cmd {
	requests := p.requests.Data()
	if p.pending != "" || p.cursor >= len(requests) {
		return nil
	}
	id := requests[p.cursor].ID
	p.pending = id
	ctx, api := p.deps.Context, p.deps.API
	return func() tea.Msg {
		return respondedMsg{id: id, accept: accept, err: api.RespondFriendRequest(ctx, id, accept)}
	}
}

func (p *FriendRequests) handleResponded(msg respondedMsg) {
	if msg.id != p.pending {
		return
	}
	p.pending = ""
	if msg.err != nil {
		p.deps.Logger.Warn("respond to friend request", zap.String("id", msg.id), zap.Error(msg.err))
		p.status, p.failed = errorText(msg.err), true
		return
	}

	requests := p.requests.Data()
	kept := make([]types.FriendRequest, 0, len(requests))
	name := "request"
	for _, r := range requests {
		if r.ID == msg.id {
			name = senderName(r)
			continue
		}
		kept = append(kept, r)
	}
	p.requests.Set(kept)
	p.cursor = moveCursor(p.cursor, 0, len(kept))
	if msg.accept {
		p.status = "Accepted " + name
	} else {
		p.status = "Declined " + name
	}
	p.failed = false
}

func (p *FriendRequests) View() string {
	body := p.requests.View(p.render)
	if p.status == "" {
		return body
	}
	style := okStyle
	if p.failed {
		style = errorStyle
	}
	return body + "\n\n" + style.Render(p.status)
}

func (p *FriendRequests) render(requests []types.FriendRequest) string {
	if len(requests) == 0 {
		return mutedStyle.Render("No pending friend requests.")
	}
	lines := make([]string, 0, len(requests)+2)
	for i, r := range requests {
		name := "  " + senderName(r)
		if i == p.cursor {
			name = cursorStyle.Render("› " + senderName(r))
		}
		when := humanize.RelTime(r.CreatedAt, p.deps.Now(), "ago", "from now")
		line := name + "  " + mutedStyle.Render(when)
		if r.ID == p.pending {
			line += "  " + mutedStyle.Render("…")
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", mutedStyle.Render("a accept · d decline · r refresh"))
	return strings.Join(lines, "\n")
}

func senderName(r types.FriendRequest) string {
	if r.Sender != nil && r.Sender.Name != "" {
		return r.Sender.Name
	}
	return r.SenderID
}
