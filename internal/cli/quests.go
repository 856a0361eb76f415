package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sage-journal/sage/internal/daemon"
)

func init() {
	questsCmd.AddCommand(questStartCmd)
	questsCmd.AddCommand(questAnswerCmd)
	rootCmd.AddCommand(questsCmd)
}

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "List knowledge quests and progress",
	RunE:  runQuests,
}

var questStartCmd = &cobra.Command{
	Use:   "start <quest-id>",
	Short: "Start a knowledge quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestStart,
}

var questAnswerCmd = &cobra.Command{
	Use:   "answer <quest-id> [answer]",
	Short: "Complete the current quest step",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runQuestAnswer,
}

func runQuests(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	progress := d.Engine.QuestProgress()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUEST\tTITLE\tSTEPS\tSTATUS")
	for _, q := range d.Engine.Catalog().Quests {
		status := "not started"
		step := 0
		if p, ok := progress[q.ID]; ok {
			step = p.CurrentStepIndex
			if p.IsCompleted {
				status = "completed"
			} else {
				status = "in progress"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n", q.ID, q.Title, step, len(q.Steps), status)
	}
	return w.Flush()
}

func runQuestStart(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if _, err := d.Engine.StartQuest(args[0]); err != nil {
		return err
	}

	quest, _ := d.Engine.Catalog().Quest(args[0])
	fmt.Printf("Started %q.\n", quest.Title)
	if len(quest.Steps) > 0 {
		fmt.Printf("Step 1: %s\n", quest.Steps[0].Content)
	}
	return nil
}

func runQuestAnswer(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	answer := ""
	if len(args) > 1 {
		answer = args[1]
	}

	progress, result, err := d.Engine.AdvanceQuest(args[0], answer)
	if err != nil {
		return err
	}

	if progress.IsCompleted {
		fmt.Println("Quest complete!")
		if result != nil {
			fmt.Printf("+%d XP", result.XPAwarded)
			if result.LevelUp {
				fmt.Printf(" — level %d!", result.NewLevel)
			}
			fmt.Println()
		}
		return nil
	}

	quest, _ := d.Engine.Catalog().Quest(args[0])
	fmt.Printf("Step %d of %d: %s\n",
		progress.CurrentStepIndex+1, len(quest.Steps),
		quest.Steps[progress.CurrentStepIndex].Content)
	return nil
}
