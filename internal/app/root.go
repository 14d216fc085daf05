package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/shell"
	"github.com/adamavenir/peerlearn/internal/types"
)

// Resolver settles the stored session at startup.
type Resolver interface {
	Resolve(ctx context.Context) error
	User() *types.User
}

// Location is the router surface the root model needs.
type Location interface {
	Location() string
	Outlet() shell.Outlet
}

type resolvedMsg struct {
	err error
}

// Root renders the login page full screen and everything else inside the shell.
type Root struct {
	ctx      context.Context
	shell    *shell.Model
	router   Location
	session  Resolver
	logger   *zap.Logger
	onSwitch func()

	width  int
	height int
}

// RootOptions configures NewRoot.
type RootOptions struct {
	Context  context.Context
	Shell    *shell.Model
	Router   Location
	Session  Resolver
	Logger   *zap.Logger
	OnSwitch func() // called when the signed-in user changes
}

func NewRoot(opts RootOptions) *Root {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Root{
		ctx:      opts.Context,
		shell:    opts.Shell,
		router:   opts.Router,
		session:  opts.Session,
		logger:   opts.Logger,
		onSwitch: opts.OnSwitch,
	}
}

func (r *Root) Init() tea.Cmd {
	ctx, session := r.ctx, r.session
	return tea.Batch(r.shell.Init(), func() tea.Msg {
		return resolvedMsg{err: session.Resolve(ctx)}
	})
}

func (r *Root) onLogin() bool {
	return r.router.Location() == shell.LoginPath
}

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case resolvedMsg:
		if msg.err != nil {
			r.logger.Warn("resolve session", zap.Error(msg.err))
		}
		cmd = tea.Batch(r.shell.Navigate(r.home()), r.forward(shell.SessionChangedMsg{}))
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		cmd = r.forward(msg)
	case shell.SessionChangedMsg:
		cmd = r.handleSessionChanged(msg)
	case shell.LogoutSettledMsg:
		r.switched()
		cmd = r.forward(msg)
	case shell.NavigateMsg:
		if msg.Path == "/dashboard" && r.onLogin() {
			r.switched()
		}
		cmd = r.forward(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return r, tea.Quit
		}
		cmd = r.input(msg)
	case tea.MouseMsg:
		cmd = r.input(msg)
	default:
		cmd = r.forward(msg)
	}
	r.fitLogin()
	return r, cmd
}

// home is where a freshly resolved session lands.
func (r *Root) home() string {
	if r.session.User() != nil {
		return "/dashboard"
	}
	return shell.LoginPath
}

func (r *Root) handleSessionChanged(msg shell.SessionChangedMsg) tea.Cmd {
	cmds := []tea.Cmd{r.forward(msg)}
	signedIn := r.session.User() != nil
	switch {
	case !signedIn && !r.onLogin() && r.router.Location() != "":
		cmds = append(cmds, r.shell.Navigate(shell.LoginPath))
		r.switched()
	case signedIn && r.onLogin():
		cmds = append(cmds, r.shell.Navigate("/dashboard"))
		r.switched()
	}
	return tea.Batch(cmds...)
}

// input routes keyboard and mouse events. The login page sits outside the
// shell, so its input skips the shell's bindings.
func (r *Root) input(msg tea.Msg) tea.Cmd {
	if r.onLogin() {
		if outlet := r.router.Outlet(); outlet != nil {
			return outlet.Update(msg)
		}
		return nil
	}
	return r.forward(msg)
}

func (r *Root) forward(msg tea.Msg) tea.Cmd {
	_, cmd := r.shell.Update(msg)
	return cmd
}

func (r *Root) switched() {
	if r.onSwitch != nil {
		r.onSwitch()
	}
}

// fitLogin gives the login page the whole terminal.
func (r *Root) fitLogin() {
	if !r.onLogin() || r.width == 0 || r.height == 0 {
		return
	}
	if outlet := r.router.Outlet(); outlet != nil {
		outlet.SetSize(r.width, r.height)
	}
}

func (r *Root) View() string {
	if r.shell.Loading() || !r.onLogin() {
		return r.shell.View()
	}
	if outlet := r.router.Outlet(); outlet != nil {
		return outlet.View()
	}
	return ""
}
