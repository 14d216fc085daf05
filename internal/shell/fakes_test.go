package shell

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/adamavenir/peerlearn/internal/types"
)

type fakeSession struct {
	session     Session
	logoutErr   error
	logoutCalls int
}

func (f *fakeSession) Session() Session { return f.session }

func (f *fakeSession) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

type fakeConnection struct{ connected bool }

func (f *fakeConnection) Connected() bool { return f.connected }

type fakeOutlet struct {
	body          string
	msgs          []tea.Msg
	width, height int
}

func (o *fakeOutlet) Update(msg tea.Msg) tea.Cmd {
	o.msgs = append(o.msgs, msg)
	return nil
}

func (o *fakeOutlet) View() string { return o.body }

func (o *fakeOutlet) SetSize(width, height int) {
	o.width, o.height = width, height
}

type fakeRouter struct {
	location      string
	navigations   []string
	backs         int
	outlet        *fakeOutlet
	width, height int
}

func (r *fakeRouter) Location() string { return r.location }

func (r *fakeRouter) Navigate(path string) tea.Cmd {
	r.location = path
	r.navigations = append(r.navigations, path)
	if r.outlet != nil && r.width > 0 {
		r.outlet.SetSize(r.width, r.height)
	}
	return nil
}

func (r *fakeRouter) Back() tea.Cmd {
	r.backs++
	if n := len(r.navigations); n >= 2 {
		r.location = r.navigations[n-2]
	}
	return nil
}

func (r *fakeRouter) Outlet() Outlet { return r.outlet }

func (r *fakeRouter) SetSize(width, height int) {
	r.width, r.height = width, height
	if r.outlet != nil {
		r.outlet.SetSize(width, height)
	}
}

type fixture struct {
	model      *Model
	session    *fakeSession
	connection *fakeConnection
	router     *fakeRouter
}

func newFixture(location string, width int) fixture {
	session := &fakeSession{session: Session{User: &types.User{Name: "Ada Lovelace", Email: "ada@example.com"}}}
	connection := &fakeConnection{connected: true}
	router := &fakeRouter{location: location, outlet: &fakeOutlet{body: "page body"}}
	model := New(Options{
		Session:    session,
		Connection: connection,
		Router:     router,
		Breakpoint: 100,
	})
	model.Update(tea.WindowSizeMsg{Width: width, Height: 30})
	return fixture{model: model, session: session, connection: connection, router: router}
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// click renders the shell, waits for the zone to register and presses the
// left button on its top-left cell.
func click(t *testing.T, m *Model, id string) tea.Cmd {
	t.Helper()
	_ = m.View()
	var z *zone.ZoneInfo
	deadline := time.Now().Add(time.Second)
	for {
		if z = m.zones.Get(id); !z.IsZero() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("zone %s was never registered", id)
		}
		time.Sleep(time.Millisecond)
	}
	_, cmd := m.Update(leftPress(z.StartX, z.StartY))
	return cmd
}

func leftPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}
