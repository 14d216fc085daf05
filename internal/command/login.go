package command

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long: "Sign in with email and password. The password is read from stdin with\n" +
			"--password-stdin or from PEERLEARN_PASSWORD. Run peerlearn without\n" +
			"arguments to use the interactive sign-in form instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			fromStdin, _ := cmd.Flags().GetBool("password-stdin")

			email = strings.TrimSpace(email)
			if email == "" {
				return writeCommandError(cmd, errors.New("--email is required"))
			}
			password, err := readPassword(cmd, fromStdin)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			user, err := ctx.Services.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().Bool("password-stdin", false, "read the password from stdin")
	return cmd
}

func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return "", errors.New("empty password on stdin")
		}
		return password, nil
	}
	if password := os.Getenv("PEERLEARN_PASSWORD"); password != "" {
		return password, nil
	}
	return "", errors.New("password required: use --password-stdin or set PEERLEARN_PASSWORD")
}
