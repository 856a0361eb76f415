package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sage-journal/sage/internal/daemon"
	"github.com/sage-journal/sage/internal/domain"
)

func init() {
	rootCmd.AddCommand(logCmd)
}

// eventAliases maps friendly command names to event types.
var eventAliases = map[string]domain.EventType{
	"experience":  domain.EventExperienceCreated,
	"detailed":    domain.EventExperienceDetailed,
	"safety":      domain.EventSafetyPractice,
	"integration": domain.EventIntegrationCompleted,
	"knowledge":   domain.EventKnowledgeReviewed,
	"launch":      domain.EventAppLaunched,
}

var logCmd = &cobra.Command{
	Use:   "log <experience|detailed|safety|integration|knowledge|launch>",
	Short: "Record an activity event",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	eventType, ok := eventAliases[args[0]]
	if !ok {
		return fmt.Errorf("unknown event %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Engine.ProcessEvent(domain.GamificationEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("+%d XP\n", result.XPAwarded)
	for _, a := range result.NewAchievements {
		fmt.Printf("Achievement unlocked: %s (+%d XP)\n", a.Name, a.XPReward)
	}
	for st, s := range result.StreakUpdates {
		fmt.Printf("Streak %s: %d days (best %d)\n", st, s.CurrentCount, s.BestCount)
	}
	if result.LevelUp {
		fmt.Printf("Level up! You are now level %d.\n", result.NewLevel)
	}
	return nil
}
