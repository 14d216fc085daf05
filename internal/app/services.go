// Package app wires the PeerLearn client together and runs the terminal UI.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/api"
	"github.com/adamavenir/peerlearn/internal/core"
	"github.com/adamavenir/peerlearn/internal/db"
	"github.com/adamavenir/peerlearn/internal/session"
	"github.com/adamavenir/peerlearn/internal/vault"
)

// Services are the long-lived collaborators shared by the UI and the CLI.
type Services struct {
	Config  *core.Config
	Logger  *zap.Logger
	Store   *db.Store
	Client  *api.Client
	Session *session.Manager
}

// Open builds the services for cfg. Callers must Close the result.
func Open(cfg *core.Config, logger *zap.Logger) (*Services, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	secret, err := vault.LoadOrCreateSecret(cfg.Store.SecretPath)
	if err != nil {
		return nil, fmt.Errorf("load secret: %w", err)
	}
	store, err := db.Open(cfg.Store.Path, secret)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Services{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Client:  client,
		Session: session.NewManager(client, store, logger.Named("session")),
	}, nil
}

// Close releases the store.
func (s *Services) Close() error {
	return s.Store.Close()
}
