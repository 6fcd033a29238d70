package main

import (
	"fmt"
	"os"

	"github.com/elijahr/lk/internal/cmd"
	"github.com/elijahr/lk/internal/executor"
)

// Exit codes
const (
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		if executor.IsInterrupted(err) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
}
