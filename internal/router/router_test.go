package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamavenir/peerlearn/internal/shell"
)

type stubPage struct {
	name          string
	location      string
	inits         *int
	width, height int
}

func (p *stubPage) Init() tea.Cmd {
	*p.inits++
	return func() tea.Msg { return p.name }
}
func (p *stubPage) Update(tea.Msg) tea.Cmd    { return nil }
func (p *stubPage) View() string              { return p.name }
func (p *stubPage) SetSize(width, height int) { p.width, p.height = width, height }

func factory(name string, inits *int) Factory {
	return func(location string) shell.Outlet {
		return &stubPage{name: name, location: location, inits: inits}
	}
}

func newTestRouter(t *testing.T) (*Router, *int) {
	t.Helper()
	inits := new(int)
	r, err := New([]Route{
		{Pattern: "/dashboard", Factory: factory("dashboard", inits)},
		{Pattern: "/classroom/*", Factory: factory("classroom", inits)},
		{Pattern: "/friends", Factory: factory("friends", inits)},
		{Pattern: "/login", Factory: factory("login", inits)},
	}, factory("not-found", inits), nil)
	require.NoError(t, err)
	return r, inits
}

func TestNavigateMountsMatchingPage(t *testing.T) {
	r, inits := newTestRouter(t)

	cmd := r.Navigate("/classroom/abc123")
	require.NotNil(t, cmd)
	assert.Equal(t, "classroom", cmd())
	assert.Equal(t, "/classroom/abc123", r.Location())
	assert.Equal(t, "classroom", r.Outlet().View())
	assert.Equal(t, "/classroom/abc123", r.Outlet().(*stubPage).location)
	assert.Equal(t, 1, *inits)
}

func TestNavigateUnknownUsesNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	r.Navigate("/unknown-route")
	assert.Equal(t, "not-found", r.Outlet().View())
	assert.Equal(t, "/unknown-route", r.Location())
}

func TestClassroomPatternIsSingleSegment(t *testing.T) {
	r, _ := newTestRouter(t)

	for path, want := range map[string]string{
		"/classroom/abc123":       "classroom",
		"/classroom/abc123/rooms": "not-found",
		"/classroom":              "not-found",
		"/dashboard":              "dashboard",
		"/dashboard/":             "not-found",
	} {
		r.Navigate(path)
		assert.Equal(t, want, r.Outlet().View(), path)
	}
}

func TestNavigateSameLocationKeepsPage(t *testing.T) {
	r, inits := newTestRouter(t)

	r.Navigate("/friends")
	page := r.Outlet()
	assert.Nil(t, r.Navigate("/friends"))
	assert.Same(t, page, r.Outlet())
	assert.Equal(t, 1, *inits)
	assert.Nil(t, r.Back(), "repeat navigation should not add history")
}

func TestBack(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Nil(t, r.Back())
	r.Navigate("/dashboard")
	r.Navigate("/friends")
	require.NotNil(t, r.Back())
	assert.Equal(t, "/dashboard", r.Location())
	assert.Nil(t, r.Back())
}

func TestBackStopsAtLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	r.Navigate("/dashboard")
	r.Navigate("/friends")
	r.Navigate(shell.LoginPath)
	assert.Nil(t, r.Back(), "login should not go back to the previous user's pages")

	r.Navigate("/dashboard")
	assert.Nil(t, r.Back(), "dashboard after sign-in should not go back to login")
	assert.Equal(t, "/dashboard", r.Location())
}

func TestSetSizeAppliesToNewPages(t *testing.T) {
	r, _ := newTestRouter(t)

	r.SetSize(80, 20)
	r.Navigate("/dashboard")
	page := r.Outlet().(*stubPage)
	assert.Equal(t, 80, page.width)
	assert.Equal(t, 20, page.height)

	r.SetSize(100, 40)
	assert.Equal(t, 100, page.width)
	assert.Equal(t, 40, page.height)
}

func TestNewRequiresNotFound(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.Error(t, err)
}
