// Package session tracks the signed-in PeerLearn user.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/api"
	"github.com/adamavenir/peerlearn/internal/db"
	"github.com/adamavenir/peerlearn/internal/shell"
	"github.com/adamavenir/peerlearn/internal/types"
)

// Backend is the subset of the API client the manager needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (types.Token, error)
	Me(ctx context.Context) (*types.User, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	Token() string
}

// Store persists the session between launches.
type Store interface {
	SaveSession(session db.StoredSession) error
	LoadSession() (*db.StoredSession, error)
	ClearSession() error
	Path() string
}

// Manager implements shell.SessionSource.
type Manager struct {
	backend Backend
	store   Store
	logger  *zap.Logger

	mu      sync.RWMutex
	user    *types.User
	loading bool
}

// NewManager returns a manager in the loading state. Call Resolve to settle it.
func NewManager(backend Backend, store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{backend: backend, store: store, logger: logger, loading: true}
}

// Session returns the current snapshot.
func (m *Manager) Session() shell.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return shell.Session{User: m.user, IsLoading: m.loading}
}

// User returns the signed-in user, if any.
func (m *Manager) User() *types.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Token returns the access token in use, or "".
func (m *Manager) Token() string {
	return m.backend.Token()
}

// Resolve restores the stored session and confirms it with the backend.
// Any failure leaves the user unset. Loading is always cleared.
func (m *Manager) Resolve(ctx context.Context) error {
	defer m.setLoading(false)

	stored, err := m.store.LoadSession()
	if err != nil {
		m.setUser(nil)
		return fmt.Errorf("load session: %w", err)
	}
	if stored == nil || stored.Token.AccessToken == "" {
		m.backend.SetToken("")
		m.setUser(nil)
		return nil
	}

	m.backend.SetToken(stored.Token.AccessToken)
	user, err := m.backend.Me(ctx)
	if err != nil {
		m.setUser(nil)
		if errors.Is(err, api.ErrUnauthorized) {
			m.backend.SetToken("")
			if clearErr := m.store.ClearSession(); clearErr != nil {
				m.logger.Warn("clear expired session", zap.Error(clearErr))
			}
		}
		return fmt.Errorf("resolve session: %w", err)
	}
	m.setUser(user)
	return nil
}

// Login signs in and persists the token pair.
func (m *Manager) Login(ctx context.Context, email, password string) (*types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	token, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.backend.SetToken(token.AccessToken)

	user, err := m.backend.Me(ctx)
	if err != nil {
		m.backend.SetToken("")
		return nil, err
	}
	if err := m.store.SaveSession(db.StoredSession{Email: email, Token: token, User: user}); err != nil {
		m.backend.SetToken("")
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.setUser(user)
	m.logger.Info("signed in", zap.String("email", email))
	return user, nil
}

// Logout revokes the token remotely and always clears local state.
// The remote error, if any, is returned after local state is gone.
func (m *Manager) Logout(ctx context.Context) error {
	var remoteErr error
	if m.backend.Token() != "" {
		remoteErr = m.backend.Logout(ctx)
	}

	m.backend.SetToken("")
	m.setUser(nil)
	if err := m.store.ClearSession(); err != nil {
		m.logger.Warn("clear session", zap.Error(err))
		if remoteErr == nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return remoteErr
}

func (m *Manager) setUser(user *types.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.loading = loading
	m.mu.Unlock()
}
