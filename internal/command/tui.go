package command

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adamavenir/peerlearn/internal/app"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, err := GetContext(cmd)
	if err != nil {
		return writeCommandError(cmd, err)
	}
	defer ctx.Close()

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Logger.Info("starting", zap.String("version", cmd.Root().Version), zap.String("api", ctx.Config.API.BaseURL))
	if err := app.Run(runCtx, ctx.Services); err != nil {
		return writeCommandError(cmd, err)
	}
	return nil
}
