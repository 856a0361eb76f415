package progression

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sage-journal/sage/internal/domain"
)

// ─── State Store & Persistence Adapter ──────────────────────────────────────
// The engine owns encoding and decoding; the collaborator is opaque
// string-keyed storage. One key per state slice, each decoded with an
// independent zero-value fallback so a corrupt slice never blocks the
// others from loading.

// Store is the persistence collaborator contract.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// State slice keys.
const (
	keyLevel             = "level"
	keyAchievements      = "achievements"
	keyStreaks           = "streaks"
	keyQuests            = "quests"
	keySafety            = "safety"
	keyChallenge         = "challenge"
	keyChallengeProgress = "challenge_progress"
	keyCounters          = "counters"
)

// aggregate is the engine-owned mutable state container. All mutation
// happens inside the processor's serialized per-event handler.
type aggregate struct {
	Level             domain.UserLevel
	Achievements      []domain.UserAchievement
	Streaks           map[domain.StreakType]domain.Streak
	Quests            map[string]domain.UserQuestProgress
	Challenge         *domain.WeeklyChallenge
	ChallengeProgress *domain.ChallengeProgress
	Safety            domain.SafetyScore
	Counters          domain.Counters

	unlocked map[string]bool // derived from Achievements
}

// newAggregate returns a zero-state aggregate (fresh level 1 user).
func newAggregate() *aggregate {
	level, _ := LevelFromTotalXP(0)
	return &aggregate{
		Level:    level,
		Streaks:  make(map[domain.StreakType]domain.Streak),
		Quests:   make(map[string]domain.UserQuestProgress),
		Counters: make(domain.Counters),
		Safety:   domain.SafetyScore{Components: map[string]float64{}, Trend: domain.TrendStable},
		unlocked: make(map[string]bool),
	}
}

// loadSlice decodes one state slice into v. Absent keys and decode
// failures both leave v at its zero value; only decode failures log.
func loadSlice(store Store, key string, v any) {
	raw, ok, err := store.Get(key)
	if err != nil {
		log.Printf("[progression] load %s: %v (using defaults)", key, err)
		return
	}
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("[progression] corrupt %s state: %v (using defaults)", key, err)
	}
}

// loadAggregate restores the aggregate from the store. Malformed
// persisted state is non-fatal: each slice falls back independently.
func loadAggregate(store Store) *aggregate {
	agg := newAggregate()

	var totalXP struct {
		TotalXP int64 `json:"total_xp"`
	}
	loadSlice(store, keyLevel, &totalXP)
	if level, err := LevelFromTotalXP(totalXP.TotalXP); err == nil {
		agg.Level = level
	}

	loadSlice(store, keyAchievements, &agg.Achievements)
	for _, a := range agg.Achievements {
		agg.unlocked[a.AchievementID] = true
	}

	loadSlice(store, keyStreaks, &agg.Streaks)
	if agg.Streaks == nil {
		agg.Streaks = make(map[domain.StreakType]domain.Streak)
	}

	loadSlice(store, keyQuests, &agg.Quests)
	if agg.Quests == nil {
		agg.Quests = make(map[string]domain.UserQuestProgress)
	}

	loadSlice(store, keySafety, &agg.Safety)
	if agg.Safety.Components == nil {
		agg.Safety.Components = map[string]float64{}
	}
	if agg.Safety.Trend == "" {
		agg.Safety.Trend = domain.TrendStable
	}

	var challenge domain.WeeklyChallenge
	loadSlice(store, keyChallenge, &challenge)
	if challenge.ID != "" {
		agg.Challenge = &challenge
	}

	var chProgress domain.ChallengeProgress
	loadSlice(store, keyChallengeProgress, &chProgress)
	if chProgress.ChallengeID != "" {
		agg.ChallengeProgress = &chProgress
	}

	loadSlice(store, keyCounters, &agg.Counters)
	if agg.Counters == nil {
		agg.Counters = make(domain.Counters)
	}

	return agg
}

// persist serializes every state slice to the store. Returns the
// first write error; the caller logs it and the snapshot is retried
// wholesale on the next event.
func (a *aggregate) persist(store Store) error {
	slices := []struct {
		key   string
		value any
	}{
		{keyLevel, a.Level},
		{keyAchievements, a.Achievements},
		{keyStreaks, a.Streaks},
		{keyQuests, a.Quests},
		{keySafety, a.Safety},
		{keyCounters, a.Counters},
	}
	for _, s := range slices {
		raw, err := json.Marshal(s.value)
		if err != nil {
			return err
		}
		if err := store.Set(s.key, string(raw)); err != nil {
			return err
		}
	}

	if a.Challenge != nil {
		raw, err := json.Marshal(a.Challenge)
		if err != nil {
			return err
		}
		if err := store.Set(keyChallenge, string(raw)); err != nil {
			return err
		}
	}
	if a.ChallengeProgress != nil {
		raw, err := json.Marshal(a.ChallengeProgress)
		if err != nil {
			return err
		}
		if err := store.Set(keyChallengeProgress, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

// snapshot builds an immutable deep copy of the aggregate.
func (a *aggregate) snapshot(now time.Time) domain.Snapshot {
	s := domain.Snapshot{
		Level:             a.Level,
		Achievements:      a.Achievements,
		Streaks:           a.Streaks,
		Quests:            a.Quests,
		Challenge:         a.Challenge,
		ChallengeProgress: a.ChallengeProgress,
		Safety:            a.Safety,
		Counters:          a.Counters,
		TakenAt:           now,
	}
	return s.Clone()
}
