package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sage-journal/sage/internal/daemon"
	"github.com/sage-journal/sage/internal/domain"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and unlock status",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked := make(map[string]domain.UserAchievement)
	for _, ua := range d.Engine.Achievements() {
		unlocked[ua.AchievementID] = ua
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tTIER\tXP\tSTATUS")
	for _, def := range d.Engine.Catalog().Achievements {
		status := "locked"
		if ua, ok := unlocked[def.ID]; ok {
			status = "unlocked " + ua.UnlockedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", def.Name, def.Tier, def.XPReward, status)
	}
	return w.Flush()
}
