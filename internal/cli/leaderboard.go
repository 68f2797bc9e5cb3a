package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smilepoint-health/smilepoint/internal/daemon"
)

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 10, "Number of accounts to show")
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardLimit int

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"top"},
	Short:   "List accounts ranked by lifetime points",
	RunE:    runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rows, err := d.Engine.Leaderboard(leaderboardLimit)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No accounts yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tACCOUNT\tPOINTS\tTIER")
	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, row.AccountID, row.TotalPoints, row.Tier)
	}
	return w.Flush()
}
