package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/app"
	"github.com/adamavenir/peerlearn/internal/core"
	"github.com/adamavenir/peerlearn/internal/logging"
)

// CommandContext provides shared command resources.
type CommandContext struct {
	Config     *core.Config
	ConfigPath string
	JSONMode   bool
	Logger     *zap.Logger
	Services   *app.Services
}

// loadConfig resolves the --config flag and reads the file over defaults.
func loadConfig(cmd *cobra.Command) (*core.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = core.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
	}
	cfg, err := core.LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// GetContext loads config, logging and services for a command.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	jsonMode, _ := cmd.Flags().GetBool("json")

	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	services, err := app.Open(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &CommandContext{
		Config:     cfg,
		ConfigPath: path,
		JSONMode:   jsonMode,
		Logger:     logger,
		Services:   services,
	}, nil
}

// Close releases the services and flushes the log.
func (c *CommandContext) Close() {
	_ = c.Services.Close()
	_ = c.Logger.Sync()
}
