package db

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamavenir/peerlearn/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"), bytes.Repeat([]byte{9}, 32))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadSessionEmpty(t *testing.T) {
	store := openTestStore(t)

	session, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSaveLoadSession(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveSession(StoredSession{
		Email: "ada@example.com",
		Token: types.Token{AccessToken: "acc", RefreshToken: "ref"},
		User:  &types.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	session, err := store.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Equal(t, "acc", session.Token.AccessToken)
	assert.Equal(t, "ref", session.Token.RefreshToken)
	assert.Equal(t, "bearer", session.Token.TokenType)
	require.NotNil(t, session.User)
	assert.Equal(t, "Ada", session.User.Name)
	assert.False(t, session.UpdatedAt.IsZero())
}

func TestSaveSessionSealsTokens(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSession(StoredSession{
		Email: "ada@example.com",
		Token: types.Token{AccessToken: "plain-access", RefreshToken: "plain-refresh"},
	}))

	conn, err := sql.Open("sqlite", store.Path())
	require.NoError(t, err)
	defer conn.Close()

	var access string
	require.NoError(t, conn.QueryRow("SELECT access_token FROM peerlearn_session").Scan(&access))
	assert.False(t, strings.Contains(access, "plain-access"), "access token stored in clear")
}

func TestSaveSessionReplaces(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSession(StoredSession{Email: "a@example.com", Token: types.Token{AccessToken: "1", RefreshToken: "1"}}))
	require.NoError(t, store.SaveSession(StoredSession{Email: "b@example.com", Token: types.Token{AccessToken: "2", RefreshToken: "2"}}))

	session, err := store.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "b@example.com", session.Email)
	assert.Nil(t, session.User)
}

func TestClearSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveSession(StoredSession{Email: "a@example.com", Token: types.Token{AccessToken: "1", RefreshToken: "1"}}))
	require.NoError(t, store.ClearSession())

	session, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLoadSessionWrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(path, bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(StoredSession{Email: "a@example.com", Token: types.Token{AccessToken: "1", RefreshToken: "1"}}))
	require.NoError(t, store.Close())

	other, err := Open(path, bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)
	defer other.Close()

	_, err = other.LoadSession()
	assert.Error(t, err)
}
