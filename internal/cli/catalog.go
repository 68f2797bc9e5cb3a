package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smilepoint-health/smilepoint/internal/app/rewards"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the tiers, achievements, and rewards catalog",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat := rewards.DefaultCatalog()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "TIER\tMIN\tMAX")
	for _, t := range cat.Tiers {
		max := "∞"
		if t.MaxPoints >= 0 {
			max = fmt.Sprintf("%d", t.MaxPoints)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.Name, t.MinPoints, max)
	}

	fmt.Fprintln(w, "\nACHIEVEMENT\tCATEGORY\tBONUS")
	for _, a := range cat.Achievements {
		fmt.Fprintf(w, "%s\t%s\t%d\n", a.Name, a.Category, a.Points)
	}

	fmt.Fprintln(w, "\nREWARD\tCOST\tVALUE")
	for _, r := range cat.Rewards {
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.Name, r.Cost, r.Value)
	}

	return w.Flush()
}
