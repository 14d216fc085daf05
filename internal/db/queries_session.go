package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/adamavenir/peerlearn/internal/types"
	"github.com/adamavenir/peerlearn/internal/vault"
)

// StoredSession is the persisted login.
type StoredSession struct {
	Email     string
	Token     types.Token
	User      *types.User
	UpdatedAt time.Time
}

// SaveSession replaces the stored session.
func (s *Store) SaveSession(session StoredSession) error {
	access, err := vault.SealString(session.Token.AccessToken, s.secret)
	if err != nil {
		return err
	}
	refresh, err := vault.SealString(session.Token.RefreshToken, s.secret)
	if err != nil {
		return err
	}
	tokenType := session.Token.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}

	var userJSON sql.NullString
	if session.User != nil {
		data, err := json.Marshal(session.User)
		if err != nil {
			return err
		}
		userJSON = sql.NullString{String: string(data), Valid: true}
	}

	updatedAt := session.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = s.conn.Exec(`
		INSERT OR REPLACE INTO peerlearn_session
		  (id, email, access_token, refresh_token, token_type, user_json, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		session.Email, access, refresh, tokenType, userJSON, updatedAt.UnixMilli())
	return err
}

// LoadSession returns the stored session, or nil if nobody is signed in.
func (s *Store) LoadSession() (*StoredSession, error) {
	row := s.conn.QueryRow(`
		SELECT email, access_token, refresh_token, token_type, user_json, updated_at
		FROM peerlearn_session WHERE id = 1`)

	var (
		session   StoredSession
		access    string
		refresh   string
		userJSON  sql.NullString
		updatedAt int64
	)
	if err := row.Scan(&session.Email, &access, &refresh, &session.Token.TokenType, &userJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if session.Token.AccessToken, err = vault.OpenString(access, s.secret); err != nil {
		return nil, err
	}
	if session.Token.RefreshToken, err = vault.OpenString(refresh, s.secret); err != nil {
		return nil, err
	}
	if userJSON.Valid && userJSON.String != "" {
		var user types.User
		if err := json.Unmarshal([]byte(userJSON.String), &user); err != nil {
			return nil, err
		}
		session.User = &user
	}
	session.UpdatedAt = time.UnixMilli(updatedAt)
	return &session, nil
}

// ClearSession removes the stored session.
func (s *Store) ClearSession() error {
	_, err := s.conn.Exec("DELETE FROM peerlearn_session")
	return err
}
