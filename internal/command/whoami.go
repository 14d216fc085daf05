package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			svc := ctx.Services
			if err := svc.Session.Resolve(cmd.Context()); err != nil {
				return writeCommandError(cmd, err)
			}
			user := svc.Session.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(user)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
			if user.StudentID != nil && *user.StudentID != "" {
				fmt.Fprintf(out, "  student id: %s\n", *user.StudentID)
			}
			fmt.Fprintf(out, "  learning streak: %d\n", user.LearningStreak)
			if len(user.StudyInterests) > 0 {
				fmt.Fprintf(out, "  interests: %s\n", strings.Join(user.StudyInterests, ", "))
			}
			return nil
		},
	}
}
