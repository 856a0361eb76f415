package progression_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sage-journal/sage/internal/app/progression"
	"github.com/sage-journal/sage/internal/catalog"
	"github.com/sage-journal/sage/internal/domain"
)

func challengeCatalog(templates ...domain.ChallengeTemplate) *catalog.Catalog {
	return catalog.New(nil, nil, templates)
}

func TestChallenge_GeneratedForWeekAndReused(t *testing.T) {
	cat := challengeCatalog(domain.ChallengeTemplate{
		Title: "Consistent Logger", RewardXP: 250,
		Requirements: []domain.ChallengeRequirement{
			{Metric: domain.CounterExperiencesLogged, Target: 5},
		},
	})
	eng, _ := testEngine(t, cat)

	_, _ = eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon))
	first, _ := eng.ChallengeState()
	if first == nil {
		t.Fatal("expected a challenge for the current week")
	}

	_, _ = eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon.AddDate(0, 0, 1)))
	second, _ := eng.ChallengeState()
	if second.ID != first.ID {
		t.Errorf("challenge regenerated within the same week: %s vs %s", first.ID, second.ID)
	}

	// Two weeks later a fresh challenge is generated.
	_, _ = eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon.AddDate(0, 0, 14)))
	third, _ := eng.ChallengeState()
	if third.ID == first.ID {
		t.Error("expected a new challenge after the week rolled over")
	}
}

func TestChallenge_EdgeTriggeredCompletion(t *testing.T) {
	cat := challengeCatalog(domain.ChallengeTemplate{
		Title: "Quick One", RewardXP: 300,
		Requirements: []domain.ChallengeRequirement{
			{Metric: domain.CounterExperiencesLogged, Target: 2},
		},
	})
	eng, _ := testEngine(t, cat)

	r1, _ := eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon))
	if r1.XPAwarded != 25 {
		t.Errorf("event 1: expected 25 XP, got %d", r1.XPAwarded)
	}

	// Second event crosses progress >= 1.0: base 25 + reward 300.
	r2, _ := eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon.AddDate(0, 0, 1)))
	if r2.XPAwarded != 325 {
		t.Errorf("event 2: expected 325 XP, got %d", r2.XPAwarded)
	}

	_, progress := eng.ChallengeState()
	if progress == nil || !progress.Completed {
		t.Fatal("expected challenge completed")
	}
	if progress.Progress != 1.0 {
		t.Errorf("expected progress 1.0, got %f", progress.Progress)
	}

	// Further progress-increasing events must not re-award.
	r3, _ := eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon.AddDate(0, 0, 2)))
	if r3.XPAwarded != 25 {
		t.Errorf("event 3: expected 25 XP (no re-award), got %d", r3.XPAwarded)
	}
	if got := eng.Counters()[domain.CounterChallengesCompleted]; got != 1 {
		t.Errorf("expected challenges_completed 1, got %d", got)
	}
}

func TestChallenge_LostProgressSliceRebuilt(t *testing.T) {
	cat := challengeCatalog(domain.ChallengeTemplate{
		Title: "Consistent Logger", RewardXP: 250,
		Requirements: []domain.ChallengeRequirement{
			{Metric: domain.CounterExperiencesLogged, Target: 5},
		},
	})

	// A current-week challenge survives in the store, but its progress
	// slice is corrupt. The engine must rebuild the record instead of
	// failing on the first event.
	year, week := noon.UTC().ISOWeek()
	weekISO := fmt.Sprintf("%d-W%02d", year, week)
	seeded := domain.WeeklyChallenge{
		ID:      "challenge-" + weekISO,
		Title:   "Consistent Logger",
		WeekISO: weekISO,
		Requirements: []domain.ChallengeRequirement{
			{Metric: domain.CounterExperiencesLogged, Target: 5},
		},
		XPReward: 250,
	}
	raw, err := json.Marshal(seeded)
	if err != nil {
		t.Fatalf("marshal challenge: %v", err)
	}

	store := newMemStore()
	store.data["challenge"] = string(raw)
	store.data["challenge_progress"] = "{corrupt"

	eng := progression.New(store, cat)
	res, err := eng.ProcessEvent(eventAt(domain.EventExperienceCreated, noon))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.XPAwarded != 25 {
		t.Errorf("expected 25 XP, got %d", res.XPAwarded)
	}

	active, progress := eng.ChallengeState()
	if active == nil || active.ID != seeded.ID {
		t.Fatalf("expected seeded challenge kept, got %+v", active)
	}
	if progress == nil || progress.ChallengeID != seeded.ID {
		t.Fatalf("expected rebuilt progress record, got %+v", progress)
	}

	// Absent progress (never persisted) recovers the same way.
	delete(store.data, "challenge_progress")
	reloaded := progression.New(store, cat)
	if _, err := reloaded.ProcessEvent(eventAt(domain.EventExperienceCreated, noon)); err != nil {
		t.Fatalf("process after reload: %v", err)
	}
	if _, p := reloaded.ChallengeState(); p == nil || p.ChallengeID != seeded.ID {
		t.Fatalf("expected rebuilt progress after reload, got %+v", p)
	}
}

func TestChallenge_MultiRequirementMean(t *testing.T) {
	cat := challengeCatalog(domain.ChallengeTemplate{
		Title: "Safety Week", RewardXP: 300,
		Requirements: []domain.ChallengeRequirement{
			{Metric: domain.CounterSafetyPractices, Target: 2},
			{Metric: domain.CounterExperiencesLogged, Target: 2},
		},
	})
	eng, _ := testEngine(t, cat)

	_, _ = eng.ProcessEvent(eventAt(domain.EventSafetyPractice, noon))
	_, _ = eng.ProcessEvent(eventAt(domain.EventSafetyPractice, noon))

	_, progress := eng.ChallengeState()
	if progress.Progress != 0.5 {
		t.Errorf("expected 0.5 (one requirement done), got %f", progress.Progress)
	}
	if progress.Completed {
		t.Error("challenge completed too early")
	}
}
