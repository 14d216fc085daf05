package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			svc := ctx.Services
			stored, err := svc.Store.LoadSession()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if stored == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}

			svc.Client.SetToken(stored.Token.AccessToken)
			if err := svc.Session.Logout(cmd.Context()); err != nil {
				// Local state is already gone; the server will expire the token.
				ctx.Logger.Warn("remote logout failed", zap.Error(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", stored.Email)
			return nil
		},
	}
}
