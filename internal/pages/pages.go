// Package pages holds the views mounted in the shell's content slot.
package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/api"
	"github.com/adamavenir/peerlearn/internal/router"
	"github.com/adamavenir/peerlearn/internal/shell"
	"github.com/adamavenir/peerlearn/internal/types"
)

// API is the backend surface the pages read from.
type API interface {
	Friends(ctx context.Context) ([]types.User, error)
	FriendRequests(ctx context.Context) ([]types.FriendRequest, error)
	RespondFriendRequest(ctx context.Context, id string, accept bool) error
	Classrooms(ctx context.Context) ([]types.Classroom, error)
	Classroom(ctx context.Context, id string) (*types.Classroom, error)
	YouTubeSessions(ctx context.Context) ([]types.YouTubeSession, error)
}

// Deps are shared by every page.
type Deps struct {
	Context context.Context
	API     API
	User    func() *types.User
	Login   func(ctx context.Context, email, password string) (*types.User, error)
	Logger  *zap.Logger
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Context == nil {
		d.Context = context.Background()
	}
	if d.User == nil {
		d.User = func() *types.User { return nil }
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Routes returns the route table for every page.
func Routes(deps Deps) []router.Route {
	deps = deps.withDefaults()
	return []router.Route{
		{Pattern: shell.LoginPath, Factory: func(string) shell.Outlet { return NewLogin(deps) }},
		{Pattern: "/dashboard", Factory: func(string) shell.Outlet { return NewDashboard(deps) }},
		{Pattern: "/classroom/*", Factory: func(location string) shell.Outlet {
			id := strings.TrimPrefix(location, "/classroom/")
			if id == "" {
				return NewNotFound(location)
			}
			return NewClassroom(deps, id)
		}},
		{Pattern: "/youtube-summarizer", Factory: func(string) shell.Outlet { return NewYouTube(deps) }},
		{Pattern: "/friends", Factory: func(string) shell.Outlet { return NewFriends(deps) }},
		{Pattern: "/friend-requests", Factory: func(string) shell.Outlet { return NewFriendRequests(deps) }},
		{Pattern: "/profile", Factory: func(string) shell.Outlet { return NewProfile(deps) }},
	}
}

// NotFoundFactory builds the fallback page.
func NotFoundFactory() router.Factory {
	return func(location string) shell.Outlet { return NewNotFound(location) }
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return shell.NavigateMsg{Path: path} }
}

// errorText prefers the backend's detail message.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// frame holds the size every page is given.
type frame struct {
	width  int
	height int
}

func (f *frame) SetSize(width, height int) {
	f.width, f.height = width, height
}
