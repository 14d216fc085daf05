// Package socket keeps the realtime connection to the PeerLearn backend open
// and reports whether it is up.
package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/types"
)

const writeWait = 5 * time.Second

// Options configures a Monitor.
type Options struct {
	URL            string
	Token          func() string
	PingPeriod     time.Duration
	RedialInterval time.Duration
	Logger         *zap.Logger
	// OnChange is called from the monitor goroutine whenever Connected flips.
	OnChange func(connected bool)
}

// Monitor implements shell.ConnectionSource.
type Monitor struct {
	url      string
	token    func() string
	ping     time.Duration
	redial   time.Duration
	logger   *zap.Logger
	onChange func(bool)
	dialer   *websocket.Dialer

	mu        sync.RWMutex
	connected bool
	conn      *websocket.Conn
}

// NewMonitor validates opts and returns a disconnected monitor.
func NewMonitor(opts Options) (*Monitor, error) {
	if _, err := url.Parse(opts.URL); err != nil || opts.URL == "" {
		return nil, fmt.Errorf("socket: invalid url %q", opts.URL)
	}
	if opts.Token == nil {
		opts.Token = func() string { return "" }
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = 54 * time.Second
	}
	if opts.RedialInterval <= 0 {
		opts.RedialInterval = 3 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Monitor{
		url:      opts.URL,
		token:    opts.Token,
		ping:     opts.PingPeriod,
		redial:   opts.RedialInterval,
		logger:   opts.Logger.Named("socket"),
		onChange: opts.OnChange,
		dialer:   &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}, nil
}

// Connected reports whether the socket is currently open.
func (m *Monitor) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Reset drops the current connection so the next dial picks up a new token.
func (m *Monitor) Reset() {
	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// Run dials, serves, and redials at a fixed interval until ctx is done.
// Nothing is dialed while there is no token.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if token := m.token(); token != "" {
			err := m.serve(ctx, token)
			m.setConnected(nil, false)
			if err != nil && ctx.Err() == nil {
				m.logger.Debug("connection ended", zap.Error(err))
			}
		}

		timer := time.NewTimer(m.redial)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func (m *Monitor) dialURL(token string) (string, error) {
	u, err := url.Parse(m.url)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (m *Monitor) serve(ctx context.Context, token string) error {
	target, err := m.dialURL(token)
	if err != nil {
		return err
	}
	conn, resp, err := m.dialer.DialContext(ctx, target, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	m.setConnected(conn, true)
	m.logger.Info("connected")

	var wg sync.WaitGroup
	done := make(chan struct{})
	defer wg.Wait()
	defer close(done)

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.keepAlive(ctx, conn, done)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := m.handle(conn, data); err != nil {
			return err
		}
	}
}

// keepAlive sends ping control frames and closes conn when ctx ends.
// WriteControl is safe to call alongside the reader's writes.
func (m *Monitor) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(m.ping)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				m.logger.Debug("ping failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}
}

func (m *Monitor) handle(conn *websocket.Conn, data []byte) error {
	var env types.SocketEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		m.logger.Debug("bad frame", zap.Error(err))
		return nil
	}
	switch env.Type {
	case "ping":
		reply, err := json.Marshal(types.SocketEnvelope{Type: "pong"})
		if err != nil {
			return err
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteMessage(websocket.TextMessage, reply)
	case "error":
		m.logger.Warn("server error frame", zap.Any("data", env.Data))
	default:
		m.logger.Debug("frame", zap.String("type", env.Type))
	}
	return nil
}

func (m *Monitor) setConnected(conn *websocket.Conn, connected bool) {
	m.mu.Lock()
	changed := m.connected != connected
	m.connected = connected
	m.conn = conn
	m.mu.Unlock()

	if changed && m.onChange != nil {
		m.onChange(connected)
	}
}
