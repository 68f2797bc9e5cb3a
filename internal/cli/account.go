package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smilepoint-health/smilepoint/internal/daemon"
)

func init() {
	accountCmd.Flags().IntVar(&accountLedgerLimit, "ledger", 10, "Number of recent ledger entries to show")
	rootCmd.AddCommand(accountCmd)
}

var accountLedgerLimit int

var accountCmd = &cobra.Command{
	Use:   "account <account-id>",
	Short: "Show an account's rewards snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccount,
}

func runAccount(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	acc, err := d.Engine.GetAccount(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Account:    %s\n", acc.ID)
	fmt.Printf("Tier:       %s (%.0f%% to next)\n", acc.Tier, d.Engine.TierProgressFor(acc))
	fmt.Printf("Points:     %d lifetime, %d available\n", acc.TotalPoints, acc.AvailablePoints)
	fmt.Printf("Streaks:    login %d (best %d), activity %d (best %d)\n",
		acc.Streak.CurrentLogin, acc.Streak.LongestLogin,
		acc.Streak.CurrentActivity, acc.Streak.LongestActivity)
	fmt.Printf("Unlocked:   %d achievements\n", len(acc.Unlocked))
	fmt.Printf("Referrals:  %d (%d completed)\n", len(acc.Referrals), acc.CompletedReferrals())

	entries, err := d.Engine.LedgerHistory(acc.ID, accountLedgerLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("\nNo ledger activity yet.")
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tPOINTS\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%+d\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Kind,
			e.Points,
			e.Description,
		)
	}
	return w.Flush()
}
