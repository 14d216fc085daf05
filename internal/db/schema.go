package db

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
-- Signed-in session; at most one row (id = 1)
CREATE TABLE IF NOT EXISTS peerlearn_session (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  email TEXT NOT NULL,
  access_token TEXT NOT NULL,          -- sealed, see internal/vault
  refresh_token TEXT NOT NULL,         -- sealed
  token_type TEXT NOT NULL DEFAULT 'bearer',
  user_json TEXT,                      -- last known profile
  updated_at INTEGER NOT NULL          -- unix millis
);
`

// InitSchema creates the tables if they do not exist.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
