package progression

import (
	"time"

	"github.com/sage-journal/sage/internal/domain"
	"github.com/sage-journal/sage/internal/infra/metrics"
)

// ─── Achievement Evaluator ──────────────────────────────────────────────────
// Stateless rule matching over the catalog and the current aggregate.
// Unlock order is catalog-definition order; already-unlocked ids are
// skipped, so the unlocked set only ever grows.

// checkAchievementsLocked evaluates every locked achievement and
// unlocks those whose requirements are all satisfied. Each unlock
// awards its XP reward immediately, so a later LEVEL_REACHED
// requirement in the same pass observes the raised level.
// Caller holds mu.
func (e *Engine) checkAchievementsLocked(now time.Time) []domain.Achievement {
	var newlyUnlocked []domain.Achievement

	for _, def := range e.cat.Achievements {
		if e.agg.unlocked[def.ID] {
			continue
		}
		if !requirementsMet(def.Requirements, e.agg) {
			continue
		}

		e.agg.Achievements = append(e.agg.Achievements, domain.UserAchievement{
			AchievementID: def.ID,
			UnlockedAt:    now,
			IsCompleted:   true,
		})
		e.agg.unlocked[def.ID] = true
		e.awardXPLocked(def.XPReward, domain.XPAchievement)
		metrics.AchievementsUnlocked.Inc()

		newlyUnlocked = append(newlyUnlocked, def)
	}

	return newlyUnlocked
}

// requirementsMet reports whether all requirements hold (logical AND).
func requirementsMet(reqs []domain.Requirement, agg *aggregate) bool {
	for _, req := range reqs {
		if !requirementMet(req, agg) {
			return false
		}
	}
	return len(reqs) > 0
}

// requirementMet evaluates a single requirement against the aggregate.
// Every type compares a real metric; unknown types never satisfy.
func requirementMet(req domain.Requirement, agg *aggregate) bool {
	var metric int64

	switch req.Type {
	case domain.ReqExperiencesLogged:
		metric = agg.Counters[domain.CounterExperiencesLogged]
	case domain.ReqDetailedExperiences:
		metric = agg.Counters[domain.CounterDetailedExperiences]
	case domain.ReqSafetyPracticesUsed:
		metric = agg.Counters[domain.CounterSafetyPractices]
	case domain.ReqIntegrationSessions:
		metric = agg.Counters[domain.CounterIntegrationSessions]
	case domain.ReqQuestsCompleted:
		metric = agg.Counters[domain.CounterQuestsCompleted]
	case domain.ReqChallengesCompleted:
		metric = agg.Counters[domain.CounterChallengesCompleted]
	case domain.ReqConsecutiveDaysLogging:
		metric = int64(agg.Streaks[domain.StreakDailyLogging].CurrentCount)
	case domain.ReqAppUsageStreak:
		metric = int64(agg.Streaks[domain.StreakAppUsage].CurrentCount)
	case domain.ReqLevelReached:
		metric = int64(agg.Level.CurrentLevel)
	case domain.ReqTotalXP:
		metric = agg.Level.TotalXP
	default:
		return false
	}

	return metric >= req.Target
}
