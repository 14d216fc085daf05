package main

import (
	"fmt"
	"os"

	"github.com/adamavenir/peerlearn/internal/command"
)

func main() {
	if err := command.Execute(); err != nil {
		if !command.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}
