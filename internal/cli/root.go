// Package cli implements the sage command-line interface using Cobra.
// Each subcommand maps to a progression capability (log, status,
// quests, achievements, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sage",
	Short: "sage — local progression and reward engine",
	Long: `sage tracks your journaling progression locally.
Log activity events to earn XP, keep streaks alive, unlock
achievements, and work through knowledge quests — all on your machine,
no accounts, no network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
