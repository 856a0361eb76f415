package progression_test

import (
	"errors"
	"testing"

	"github.com/sage-journal/sage/internal/catalog"
	"github.com/sage-journal/sage/internal/domain"
)

func questCatalog() *catalog.Catalog {
	quests := []domain.KnowledgeQuest{
		{
			ID: "basics", Title: "Basics",
			Steps: []domain.QuestStep{
				{ID: "b1", Type: domain.StepInfo, Content: "read this"},
				{ID: "b2", Type: domain.StepQuiz, Content: "answer?", RequiredAnswer: "setting"},
				{ID: "b3", Type: domain.StepPractice, Content: "try it"},
			},
		},
		{
			ID: "advanced", Title: "Advanced",
			Prerequisites: []string{"basics"},
			Steps: []domain.QuestStep{
				{ID: "a1", Type: domain.StepInfo, Content: "more"},
			},
		},
	}
	return catalog.New(nil, quests, nil)
}

func TestStartQuest_Unknown(t *testing.T) {
	eng, _ := testEngine(t, questCatalog())
	if _, err := eng.StartQuestAt("nope", noon); !errors.Is(err, domain.ErrUnknownQuest) {
		t.Errorf("expected ErrUnknownQuest, got %v", err)
	}
}

func TestStartQuest_PrerequisiteNotMet(t *testing.T) {
	eng, _ := testEngine(t, questCatalog())
	if _, err := eng.StartQuestAt("advanced", noon); !errors.Is(err, domain.ErrPrerequisiteNotMet) {
		t.Errorf("expected ErrPrerequisiteNotMet, got %v", err)
	}
}

func TestQuest_FullFlow(t *testing.T) {
	eng, _ := testEngine(t, questCatalog())

	if _, err := eng.StartQuestAt("basics", noon); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Info step completes without an answer.
	p, res, err := eng.AdvanceQuestAt("basics", "", noon)
	if err != nil {
		t.Fatalf("advance info: %v", err)
	}
	if res != nil {
		t.Fatal("quest completed too early")
	}
	if p.CurrentStepIndex != 1 || !p.StepProgress["b1"] {
		t.Errorf("unexpected progress after info step: %+v", p)
	}

	// Wrong quiz answer does not advance.
	p, _, err = eng.AdvanceQuestAt("basics", "wrong", noon)
	if !errors.Is(err, domain.ErrIncorrectAnswer) {
		t.Fatalf("expected ErrIncorrectAnswer, got %v", err)
	}
	if p.CurrentStepIndex != 1 {
		t.Errorf("wrong answer advanced the quest: %+v", p)
	}

	// Case-insensitive, trimmed match.
	p, _, err = eng.AdvanceQuestAt("basics", "  Setting ", noon)
	if err != nil {
		t.Fatalf("advance quiz: %v", err)
	}
	if p.CurrentStepIndex != 2 {
		t.Errorf("quiz step did not advance: %+v", p)
	}

	// Final step completes the quest and processes QUEST_COMPLETED.
	p, res, err = eng.AdvanceQuestAt("basics", "", noon)
	if err != nil {
		t.Fatalf("advance practice: %v", err)
	}
	if !p.IsCompleted || p.CompletedAt.IsZero() {
		t.Errorf("expected completed quest: %+v", p)
	}
	if res == nil {
		t.Fatal("expected a result from quest completion")
	}
	if res.XPAwarded != 75 {
		t.Errorf("expected 75 XP for quest completion, got %d", res.XPAwarded)
	}
	if got := eng.Counters()[domain.CounterQuestsCompleted]; got != 1 {
		t.Errorf("expected quests_completed 1, got %d", got)
	}

	// Completed quests are immutable.
	if _, _, err := eng.AdvanceQuestAt("basics", "", noon); !errors.Is(err, domain.ErrQuestCompleted) {
		t.Errorf("expected ErrQuestCompleted, got %v", err)
	}
	if _, err := eng.StartQuestAt("basics", noon); !errors.Is(err, domain.ErrQuestCompleted) {
		t.Errorf("expected ErrQuestCompleted on restart, got %v", err)
	}

	// Prerequisite now satisfied.
	if _, err := eng.StartQuestAt("advanced", noon); err != nil {
		t.Errorf("expected advanced startable, got %v", err)
	}
}

func TestQuest_CompletionUnlocksAchievement(t *testing.T) {
	quests := []domain.KnowledgeQuest{{
		ID: "solo", Title: "Solo",
		Steps: []domain.QuestStep{{ID: "s1", Type: domain.StepInfo}},
	}}
	achievements := []domain.Achievement{{
		ID: "first_quest", Name: "Curious Mind", XPReward: 100,
		Requirements: []domain.Requirement{
			{Type: domain.ReqQuestsCompleted, Target: 1},
		},
	}}
	eng, _ := testEngine(t, catalog.New(achievements, quests, nil))

	_, _ = eng.StartQuestAt("solo", noon)
	_, res, err := eng.AdvanceQuestAt("solo", "", noon)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res == nil || len(res.NewAchievements) != 1 {
		t.Fatalf("expected achievement unlock with quest completion, got %+v", res)
	}
	// Quest 75 + achievement 100.
	if res.XPAwarded != 175 {
		t.Errorf("expected 175 XP, got %d", res.XPAwarded)
	}
}

func TestAvailableQuests_FiltersPrerequisitesAndCompleted(t *testing.T) {
	eng, _ := testEngine(t, questCatalog())

	avail := eng.AvailableQuests()
	if len(avail) != 1 || avail[0].ID != "basics" {
		t.Fatalf("expected only basics available, got %v", questIDs(avail))
	}

	_, _ = eng.StartQuestAt("basics", noon)
	_, _, _ = eng.AdvanceQuestAt("basics", "", noon)
	_, _, _ = eng.AdvanceQuestAt("basics", "setting", noon)
	_, _, _ = eng.AdvanceQuestAt("basics", "", noon)

	avail = eng.AvailableQuests()
	if len(avail) != 1 || avail[0].ID != "advanced" {
		t.Fatalf("expected only advanced available, got %v", questIDs(avail))
	}
}

func questIDs(quests []domain.KnowledgeQuest) []string {
	ids := make([]string, len(quests))
	for i, q := range quests {
		ids[i] = q.ID
	}
	return ids
}
