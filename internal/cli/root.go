// Package cli implements the SmilePoint command-line interface using Cobra.
// Subcommands cover the serving daemon plus operator inspection of the
// local rewards store.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smilepoint",
	Short: "SmilePoint — rewards and loyalty ledger engine",
	Long: `SmilePoint is the rewards engine behind the dental practice dashboard.
It maintains per-account point ledgers, tiers, achievements, streaks,
referrals, and reward redemptions.`,
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
