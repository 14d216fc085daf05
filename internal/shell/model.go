// Package shell is the PeerLearn navigation frame: sidebar, top bar,
// connection indicator and logout around the routed page.
package shell

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

const (
	defaultBreakpoint   = 100
	defaultSidebarWidth = 26
	// MaxContentWidth caps the content container.
	MaxContentWidth = 120
	topBarHeight    = 2
	overlayMaxWidth = 32
)

// Options configure the shell.
type Options struct {
	Context      context.Context
	Session      SessionSource
	Connection   ConnectionSource
	Router       Router
	Logger       *zap.Logger
	Breakpoint   int
	SidebarWidth int
	Animate      bool
}

// Model implements the navigation shell.
type Model struct {
	ctx        context.Context
	session    SessionSource
	connection ConnectionSource
	router     Router
	logger     *zap.Logger

	breakpoint   int
	sidebarWidth int
	animate      bool

	width  int
	height int

	sidebarOpen   bool
	overlayCursor int
	// Slide-in state: panelOffset runs from -panelWidth (hidden) to 0 (in place).
	panelOffset   float64
	panelVelocity float64
	animating     bool
	spring        harmonica.Spring

	spinner  spinner.Model
	spinning bool

	zones *zone.Manager
	keys  keyMap
}

// New builds a shell. Session, Connection and Router are required.
func New(opts Options) *Model {
	if opts.Session == nil || opts.Connection == nil || opts.Router == nil {
		panic("shell: Session, Connection and Router are required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	breakpoint := opts.Breakpoint
	if breakpoint <= 0 {
		breakpoint = defaultBreakpoint
	}
	sidebarWidth := opts.SidebarWidth
	if sidebarWidth <= 0 || sidebarWidth >= breakpoint {
		sidebarWidth = defaultSidebarWidth
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(brandColor)

	return &Model{
		ctx:          ctx,
		session:      opts.Session,
		connection:   opts.Connection,
		router:       opts.Router,
		logger:       logger,
		breakpoint:   breakpoint,
		sidebarWidth: sidebarWidth,
		animate:      opts.Animate,
		spring:       harmonica.NewSpring(harmonica.FPS(60), 7.0, 0.8),
		spinner:      sp,
		zones:        zone.New(),
		keys:         defaultKeyMap(),
	}
}

// Init starts the loading spinner.
func (m *Model) Init() tea.Cmd {
	m.spinning = true
	return m.spinner.Tick
}

// Loading reports whether the session is still resolving.
func (m *Model) Loading() bool {
	return m.session.Session().IsLoading
}

// Wide reports whether the terminal is at or above the breakpoint.
func (m *Model) Wide() bool {
	return m.width >= m.breakpoint
}

func (m *Model) mainWidth() int {
	if m.Wide() {
		return m.width - m.sidebarWidth
	}
	return m.width
}

func (m *Model) contentSize() (int, int) {
	width := m.mainWidth() - 4
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	if width < 1 {
		width = 1
	}
	height := m.height - topBarHeight - 2
	if height < 1 {
		height = 1
	}
	return width, height
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.router.SetSize(m.contentSize())
}
