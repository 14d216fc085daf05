// Package router maps locations to pages and keeps navigation history.
package router

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/shell"
)

// Factory builds the page for a location.
type Factory func(location string) shell.Outlet

// Route pairs a glob pattern with the page factory it selects.
type Route struct {
	Pattern string
	Factory Factory
}

type compiledRoute struct {
	pattern string
	glob    glob.Glob
	factory Factory
}

// Router implements shell.Router. It is only used from the UI goroutine.
type Router struct {
	routes   []compiledRoute
	notFound Factory
	logger   *zap.Logger

	location string
	history  []string
	outlet   shell.Outlet
	width    int
	height   int
}

// New compiles routes. Patterns use '/' as the separator, so "*" matches a
// single path segment and "**" matches any depth.
func New(routes []Route, notFound Factory, logger *zap.Logger) (*Router, error) {
	if notFound == nil {
		return nil, fmt.Errorf("router: notFound factory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{notFound: notFound, logger: logger}
	for _, route := range routes {
		g, err := glob.Compile(route.Pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("router: bad pattern %q: %w", route.Pattern, err)
		}
		r.routes = append(r.routes, compiledRoute{pattern: route.Pattern, glob: g, factory: route.Factory})
	}
	return r, nil
}

// Location returns the current path.
func (r *Router) Location() string {
	return r.location
}

// Outlet returns the current page.
func (r *Router) Outlet() shell.Outlet {
	return r.outlet
}

// Navigate switches to path and returns the new page's init command.
// Navigating to the current location keeps the existing page. Entering or
// leaving the login page starts a fresh history, so Back never crosses a
// sign-in boundary.
func (r *Router) Navigate(path string) tea.Cmd {
	if path == r.location && r.outlet != nil {
		return nil
	}
	if path == shell.LoginPath || r.location == shell.LoginPath {
		r.history = r.history[:0]
	}
	r.history = append(r.history, path)
	return r.mount(path)
}

// Back returns to the previous location, if any.
func (r *Router) Back() tea.Cmd {
	if len(r.history) < 2 {
		return nil
	}
	r.history = r.history[:len(r.history)-1]
	return r.mount(r.history[len(r.history)-1])
}

// SetSize sizes the current page and remembers the size so freshly mounted
// pages start sized.
func (r *Router) SetSize(width, height int) {
	r.width, r.height = width, height
	if r.outlet != nil {
		r.outlet.SetSize(width, height)
	}
}

// match returns the factory that serves path and its pattern, or the
// not-found factory and "".
func (r *Router) match(path string) (Factory, string) {
	for _, route := range r.routes {
		if route.glob.Match(path) {
			return route.factory, route.pattern
		}
	}
	return r.notFound, ""
}

func (r *Router) mount(path string) tea.Cmd {
	factory, pattern := r.match(path)
	r.logger.Debug("navigate", zap.String("path", path), zap.String("route", pattern))

	r.location = path
	r.outlet = factory(path)
	if r.width > 0 && r.height > 0 {
		r.outlet.SetSize(r.width, r.height)
	}
	if initer, ok := r.outlet.(interface{ Init() tea.Cmd }); ok {
		return initer.Init()
	}
	return nil
}
