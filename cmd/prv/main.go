// Package main implements the prv CLI: linking git commits to the
// AI-assistant sessions that most plausibly produced them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prvhq/prv/internal/prverr"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	// configPath overrides the default ~/.config/prv/config.yaml lookup.
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "prv: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:     "prv",
	Short:   "Context tracing for code",
	Long:    `prv links git commits to the AI-assistant chat sessions that most plausibly produced them.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/prv/config.yaml)")
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(debugCmd)
}

// exitCodeFor maps a command error to a process exit code. Errors
// tagged with a prverr.Kind use that kind's code; anything else is a
// generic failure.
func exitCodeFor(err error) int {
	if kind, ok := prverr.KindOf(err); ok {
		return kind.ExitCode()
	}
	return 1
}
