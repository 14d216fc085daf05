package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Socket  SocketConfig  `yaml:"socket"`
	UI      UIConfig      `yaml:"ui"`
	Notify  NotifyConfig  `yaml:"notify"`
	Logging LoggingConfig `yaml:"logging"`
	Store   StoreConfig   `yaml:"store"`
}

// APIConfig points at the PeerLearn HTTP backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SocketConfig configures the realtime connection.
type SocketConfig struct {
	URL            string        `yaml:"url"`
	PingPeriod     time.Duration `yaml:"ping_period"`
	RedialInterval time.Duration `yaml:"redial_interval"`
}

// UIConfig configures the terminal shell.
type UIConfig struct {
	Breakpoint   int  `yaml:"breakpoint"`    // columns; at or above this the sidebar docks
	SidebarWidth int  `yaml:"sidebar_width"` // docked sidebar columns
	Animate      bool `yaml:"animate"`
}

// NotifyConfig toggles desktop notifications.
type NotifyConfig struct {
	OnDisconnect bool `yaml:"on_disconnect"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// StoreConfig locates the local session database.
type StoreConfig struct {
	Path       string `yaml:"path"`
	SecretPath string `yaml:"secret_path"`
}

// ConfigDir returns ~/.config/peerlearn.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "peerlearn"), nil
}

// DefaultConfigPath returns the config file location.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns defaults rooted at dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		Socket: SocketConfig{
			URL:            "ws://localhost:8000/ws",
			PingPeriod:     54 * time.Second,
			RedialInterval: 3 * time.Second,
		},
		UI: UIConfig{
			Breakpoint:   100,
			SidebarWidth: 26,
			Animate:      true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "peerlearn.log"),
		},
		Store: StoreConfig{
			Path:       filepath.Join(dir, "session.db"),
			SecretPath: filepath.Join(dir, "secret"),
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks values the shell cannot work around.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.UI.Breakpoint <= 0 {
		return fmt.Errorf("ui.breakpoint must be positive, got %d", c.UI.Breakpoint)
	}
	if c.UI.SidebarWidth <= 0 || c.UI.SidebarWidth >= c.UI.Breakpoint {
		return fmt.Errorf("ui.sidebar_width must be between 1 and %d, got %d", c.UI.Breakpoint-1, c.UI.SidebarWidth)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PEERLEARN_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("PEERLEARN_WS_URL"); v != "" {
		c.Socket.URL = v
	}
	if v := os.Getenv("PEERLEARN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
