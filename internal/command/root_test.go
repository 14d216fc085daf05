package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(output, "peerlearn version test") {
		t.Fatalf("expected version output, got %q", output)
	}
}

func TestRootCommandHelp(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "--help")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(output, "PeerLearn") {
		t.Fatalf("expected help output, got %q", output)
	}
	for _, sub := range []string{"login", "logout", "whoami", "config"} {
		if !strings.Contains(output, sub) {
			t.Fatalf("help is missing %q: %q", sub, output)
		}
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := NewRootCmd("test")

	if _, err := executeCommand(cmd, "dashboard"); err == nil {
		t.Fatal("expected unknown argument error")
	}
}

func TestCommandErrorsAreMarkedReported(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "login")
	if err == nil {
		t.Fatal("expected missing email error")
	}
	if !IsReported(err) {
		t.Fatalf("error %v was not marked as reported", err)
	}
	if !strings.Contains(output, "Error: --email is required") {
		t.Fatalf("unexpected output %q", output)
	}

	if _, err := executeCommand(NewRootCmd("test"), "dashboard"); err == nil || IsReported(err) {
		t.Fatalf("argument errors come from cobra and are not pre-reported, got %v", err)
	}
}
