package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sage-journal/sage/internal/app/progression"
	"github.com/sage-journal/sage/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, streaks, and safety score",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	snap := d.Engine.Snapshot()

	pct := progression.ProgressPct(snap.Level)
	fmt.Printf("Level %d — %d XP total\n", snap.Level.CurrentLevel, snap.Level.TotalXP)
	fmt.Printf("[%s] %d/%d XP to level %d\n",
		progressBar(pct, 30),
		snap.Level.CurrentXP, snap.Level.XPToNextLevel,
		snap.Level.CurrentLevel+1)
	fmt.Println()

	if len(snap.Streaks) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STREAK\tCURRENT\tBEST\tLAST ACTIVITY")
		for _, s := range snap.Streaks {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
				s.Type, s.CurrentCount, s.BestCount,
				s.LastActivity.Format("2006-01-02"))
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Printf("Safety score: %.0f/100 (%s)\n", snap.Safety.OverallScore, snap.Safety.Trend)
	fmt.Printf("Achievements: %d/%d unlocked\n",
		len(snap.Achievements), len(d.Engine.Catalog().Achievements))
	return nil
}

// progressBar renders a fixed-width text progress bar.
func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
