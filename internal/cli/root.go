// Package cli implements the SpendQuest command-line interface using Cobra.
// Each subcommand maps to one progression operation (log, report, stats, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spendquest",
	Short: "SpendQuest — gamified progress tracking for expense habits",
	Long: `SpendQuest turns expense tracking into a game.
Log expenses to earn XP, keep daily streaks alive, unlock tiered
achievements, and take on a rotating weekly challenge.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// buildVersion is set by Execute and read by subcommands that need it.
var buildVersion = "dev"

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version
	buildVersion = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
