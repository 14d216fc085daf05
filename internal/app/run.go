package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/adamavenir/peerlearn/internal/notify"
	"github.com/adamavenir/peerlearn/internal/pages"
	"github.com/adamavenir/peerlearn/internal/router"
	"github.com/adamavenir/peerlearn/internal/shell"
	"github.com/adamavenir/peerlearn/internal/socket"
)

// Run starts the terminal UI and its background workers and blocks until
// the user quits or ctx ends.
func Run(ctx context.Context, svc *Services) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, logger := svc.Config, svc.Logger
	notifier := notify.New(cfg.Notify.OnDisconnect, logger.Named("notify"))

	// program is assigned before any worker starts.
	var program *tea.Program
	send := func(msg tea.Msg) {
		program.Send(msg)
	}

	monitor, err := socket.NewMonitor(socket.Options{
		URL:            cfg.Socket.URL,
		Token:          svc.Client.Token,
		PingPeriod:     cfg.Socket.PingPeriod,
		RedialInterval: cfg.Socket.RedialInterval,
		Logger:         logger,
		OnChange: func(connected bool) {
			notifier.Connection(connected)
			send(shell.ConnectionChangedMsg{})
		},
	})
	if err != nil {
		return err
	}

	deps := pages.Deps{
		Context: ctx,
		API:     svc.Client,
		User:    svc.Session.User,
		Login:   svc.Session.Login,
		Logger:  logger.Named("pages"),
	}
	rt, err := router.New(pages.Routes(deps), pages.NotFoundFactory(), logger.Named("router"))
	if err != nil {
		return err
	}

	sh := shell.New(shell.Options{
		Context:      ctx,
		Session:      svc.Session,
		Connection:   monitor,
		Router:       rt,
		Logger:       logger.Named("shell"),
		Breakpoint:   cfg.UI.Breakpoint,
		SidebarWidth: cfg.UI.SidebarWidth,
		Animate:      cfg.UI.Animate,
	})
	root := NewRoot(RootOptions{
		Context:  ctx,
		Shell:    sh,
		Router:   rt,
		Session:  svc.Session,
		Logger:   logger,
		OnSwitch: monitor.Reset,
	})

	// Set window title (ANSI OSC sequence)
	fmt.Print("\033]0;PeerLearn\007")

	program = tea.NewProgram(root,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return monitor.Run(gctx)
	})
	g.Go(func() error {
		err := svc.Session.Watch(gctx, func() {
			send(shell.SessionChangedMsg{})
		})
		if err != nil {
			// Without the watcher, sign-ins from other processes are picked up on next launch.
			logger.Warn("session watcher unavailable", zap.Error(err))
		}
		return nil
	})

	_, runErr := program.Run()
	cancel()
	if err := g.Wait(); err != nil {
		logger.Warn("background worker", zap.Error(err))
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}
