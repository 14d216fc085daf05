package session

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamavenir/peerlearn/internal/api"
	"github.com/adamavenir/peerlearn/internal/db"
	"github.com/adamavenir/peerlearn/internal/types"
)

type fakeBackend struct {
	mu        sync.Mutex
	token     string
	users     map[string]*types.User // by access token
	loginErr  error
	logoutErr error
	meErr     error
	logouts   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{users: map[string]*types.User{
		"tok-ada": {ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"},
	}}
}

func (b *fakeBackend) Login(_ context.Context, email, password string) (types.Token, error) {
	if b.loginErr != nil {
		return types.Token{}, b.loginErr
	}
	if email != "ada@example.com" || password != "secret" {
		return types.Token{}, &api.Error{Status: 401, Detail: "Incorrect email or password"}
	}
	return types.Token{AccessToken: "tok-ada", RefreshToken: "ref-ada", TokenType: "bearer"}, nil
}

func (b *fakeBackend) Me(context.Context) (*types.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.meErr != nil {
		return nil, b.meErr
	}
	user, ok := b.users[b.token]
	if !ok {
		return nil, &api.Error{Status: 401, Detail: "Could not validate credentials"}
	}
	return user, nil
}

func (b *fakeBackend) Logout(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logouts++
	return b.logoutErr
}

func (b *fakeBackend) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *fakeBackend) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

func openStore(t *testing.T, path string) *db.Store {
	t.Helper()
	store, err := db.Open(path, bytes.Repeat([]byte{3}, 32))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestManager(t *testing.T) (*Manager, *fakeBackend, *db.Store) {
	t.Helper()
	backend := newFakeBackend()
	store := openStore(t, filepath.Join(t.TempDir(), "session.db"))
	return NewManager(backend, store, nil), backend, store
}

func TestNewManagerStartsLoading(t *testing.T) {
	m, _, _ := newTestManager(t)

	snap := m.Session()
	assert.True(t, snap.IsLoading)
	assert.Nil(t, snap.User)
}

func TestResolveWithoutStoredSession(t *testing.T) {
	m, _, _ := newTestManager(t)

	require.NoError(t, m.Resolve(context.Background()))
	snap := m.Session()
	assert.False(t, snap.IsLoading)
	assert.Nil(t, snap.User)
}

func TestResolveRestoresStoredSession(t *testing.T) {
	m, backend, store := newTestManager(t)
	require.NoError(t, store.SaveSession(db.StoredSession{
		Email: "ada@example.com",
		Token: types.Token{AccessToken: "tok-ada", RefreshToken: "ref-ada"},
	}))

	require.NoError(t, m.Resolve(context.Background()))
	snap := m.Session()
	assert.False(t, snap.IsLoading)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Ada Lovelace", snap.User.Name)
	assert.Equal(t, "tok-ada", backend.Token())
}

func TestResolveExpiredTokenClearsStore(t *testing.T) {
	m, backend, store := newTestManager(t)
	require.NoError(t, store.SaveSession(db.StoredSession{
		Email: "ada@example.com",
		Token: types.Token{AccessToken: "tok-stale", RefreshToken: "ref"},
	}))

	err := m.Resolve(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, m.Session().IsLoading)
	assert.Nil(t, m.Session().User)
	assert.Empty(t, backend.Token())

	stored, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestResolveNetworkErrorKeepsStore(t *testing.T) {
	m, backend, store := newTestManager(t)
	backend.meErr = errors.New("connection refused")
	require.NoError(t, store.SaveSession(db.StoredSession{
		Email: "ada@example.com",
		Token: types.Token{AccessToken: "tok-ada", RefreshToken: "ref"},
	}))

	assert.Error(t, m.Resolve(context.Background()))
	assert.False(t, m.Session().IsLoading)
	assert.Nil(t, m.Session().User)

	stored, err := store.LoadSession()
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestLoginPersistsSession(t *testing.T) {
	m, backend, store := newTestManager(t)

	user, err := m.Login(context.Background(), " ada@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "tok-ada", backend.Token())
	assert.Equal(t, user, m.Session().User)

	stored, err := store.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.Equal(t, "tok-ada", stored.Token.AccessToken)
}

func TestLoginRejected(t *testing.T) {
	m, backend, store := newTestManager(t)

	_, err := m.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Nil(t, m.Session().User)
	assert.Empty(t, backend.Token())

	stored, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLoginRequiresCredentials(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.Login(context.Background(), "  ", "secret")
	assert.Error(t, err)
	_, err = m.Login(context.Background(), "ada@example.com", "")
	assert.Error(t, err)
}

func TestLogoutClearsLocalState(t *testing.T) {
	m, backend, store := newTestManager(t)
	_, err := m.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, 1, backend.logouts)
	assert.Nil(t, m.Session().User)
	assert.Empty(t, backend.Token())

	stored, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLogoutRemoteFailureStillClears(t *testing.T) {
	m, backend, store := newTestManager(t)
	_, err := m.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	backend.logoutErr = errors.New("boom")

	err = m.Logout(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Nil(t, m.Session().User)
	assert.Empty(t, backend.Token())

	stored, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLogoutWithoutTokenSkipsRemote(t *testing.T) {
	m, backend, _ := newTestManager(t)

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, 0, backend.logouts)
}

func TestWatchPicksUpOtherProcessLogin(t *testing.T) {
	m, _, store := newTestManager(t)
	require.NoError(t, m.Resolve(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, func() { changed <- struct{}{} })
	}()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	other := openStore(t, store.Path())
	require.NoError(t, other.SaveSession(db.StoredSession{
		Email: "ada@example.com",
		Token: types.Token{AccessToken: "tok-ada", RefreshToken: "ref-ada"},
	}))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not report the new session")
	}
	require.NotNil(t, m.Session().User)
	assert.Equal(t, "u1", m.Session().User.ID)
}

func TestSameUser(t *testing.T) {
	a := &types.User{ID: "u1"}
	b := &types.User{ID: "u1"}
	c := &types.User{ID: "u2"}

	assert.True(t, sameUser(nil, nil))
	assert.True(t, sameUser(a, b))
	assert.False(t, sameUser(a, c))
	assert.False(t, sameUser(a, nil))
	assert.False(t, sameUser(nil, a))
}
