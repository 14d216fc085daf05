package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/adamavenir/peerlearn/internal/types"
)

type fakeServer struct {
	*httptest.Server
	upgrader websocket.Upgrader

	mu     sync.Mutex
	tokens []string
	pongs  chan struct{}
	kick   chan struct{}
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	s := &fakeServer{pongs: make(chan struct{}, 8), kick: make(chan struct{})}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *fakeServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
}

func (s *fakeServer) seenTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

func (s *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	s.mu.Lock()
	s.tokens = append(s.tokens, token)
	s.mu.Unlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ping, _ := json.Marshal(types.SocketEnvelope{Type: "ping"})
	if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
		return
	}

	frames := make(chan []byte)
	go func() {
		defer close(frames)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			frames <- data
		}
	}()

	for {
		select {
		case <-s.kick:
			_ = conn.Close()
			for range frames {
			}
			return
		case data, ok := <-frames:
			if !ok {
				return
			}
			var env types.SocketEnvelope
			if json.Unmarshal(data, &env) == nil && env.Type == "pong" {
				s.pongs <- struct{}{}
			}
		}
	}
}

type changes struct {
	ch chan bool
}

func (c changes) next(t *testing.T) bool {
	t.Helper()
	select {
	case v := <-c.ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("no connection change")
		return false
	}
}

func startMonitor(t *testing.T, url string, token func() string) (*Monitor, changes, func()) {
	t.Helper()
	c := changes{ch: make(chan bool, 8)}
	m, err := NewMonitor(Options{
		URL:            url,
		Token:          token,
		PingPeriod:     20 * time.Millisecond,
		RedialInterval: 20 * time.Millisecond,
		OnChange:       func(connected bool) { c.ch <- connected },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	return m, c, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestMonitorConnectsAndAnswersPing(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	srv := newFakeServer(t)
	defer srv.Close()

	m, c, stop := startMonitor(t, srv.wsURL(), func() string { return "tok-1" })

	assert.True(t, c.next(t))
	assert.True(t, m.Connected())

	select {
	case <-srv.pongs:
	case <-time.After(5 * time.Second):
		t.Fatal("server ping was not answered")
	}
	assert.Equal(t, "tok-1", srv.seenTokens()[0])

	stop()
	assert.False(t, c.next(t))
	assert.False(t, m.Connected())
}

func TestMonitorRedialsAfterDrop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	srv := newFakeServer(t)
	defer srv.Close()

	_, c, stop := startMonitor(t, srv.wsURL(), func() string { return "tok-1" })
	defer stop()

	require.True(t, c.next(t))
	srv.kick <- struct{}{}
	assert.False(t, c.next(t))
	assert.True(t, c.next(t))
	assert.GreaterOrEqual(t, len(srv.seenTokens()), 2)
}

func TestMonitorIdleWithoutToken(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	srv := newFakeServer(t)
	defer srv.Close()

	m, _, stop := startMonitor(t, srv.wsURL(), func() string { return "" })
	time.Sleep(100 * time.Millisecond)
	stop()

	assert.False(t, m.Connected())
	assert.Empty(t, srv.seenTokens())
}

func TestMonitorUnreachableStaysDisconnected(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	srv := newFakeServer(t)
	url := srv.wsURL()
	srv.Close()

	m, _, stop := startMonitor(t, url, func() string { return "tok-1" })
	time.Sleep(100 * time.Millisecond)
	assert.False(t, m.Connected())
	stop()
}

func TestDialURLAddsToken(t *testing.T) {
	m, err := NewMonitor(Options{URL: "ws://localhost:8000/ws?client=tui"})
	require.NoError(t, err)

	got, err := m.dialURL("a b")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8000/ws?client=tui&token=a+b", got)
}

func TestNewMonitorRequiresURL(t *testing.T) {
	_, err := NewMonitor(Options{})
	assert.Error(t, err)
}
