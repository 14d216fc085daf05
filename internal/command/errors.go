package command

import (
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/adamavenir/peerlearn/internal/api"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	switch {
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: Your session is missing or expired. Try: peerlearn login")
	case isConnectionError(err):
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: Is the PeerLearn backend running? Check api.base_url with: peerlearn config")
	}

	return reportedError{err}
}

// reportedError marks errors already written to stderr.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var reported reportedError
	return errors.As(err, &reported)
}

// isConnectionError reports whether err came from failing to reach the backend.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
