package shell

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adamavenir/peerlearn/internal/types"
)

// LoginPath is where the shell sends the user after logout.
const LoginPath = "/login"

// Session is the snapshot the shell reads from its session source.
type Session struct {
	User      *types.User
	IsLoading bool
}

// SessionSource provides the signed-in user and logout.
type SessionSource interface {
	Session() Session
	Logout(ctx context.Context) error
}

// ConnectionSource reports realtime connectivity.
type ConnectionSource interface {
	Connected() bool
}

// Router owns the current location and the content slot. SetSize applies
// to the current outlet and to outlets mounted later.
type Router interface {
	Location() string
	Navigate(path string) tea.Cmd
	Back() tea.Cmd
	Outlet() Outlet
	SetSize(width, height int)
}

// Outlet is the page rendered in the content slot.
type Outlet interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
}

// SessionChangedMsg tells the shell its session source has new state.
type SessionChangedMsg struct{}

// ConnectionChangedMsg tells the shell its connection source has new state.
type ConnectionChangedMsg struct{}

// NavigateMsg asks the shell to move to Path. Pages use it for links.
type NavigateMsg struct {
	Path string
}

// LogoutSettledMsg reports that the session source finished logging out.
type LogoutSettledMsg struct {
	Err error
}
