package progression

import (
	"time"

	"github.com/sage-journal/sage/internal/domain"
)

// ─── Safety Score ───────────────────────────────────────────────────────────
// A derived composite in [0, 100] summarizing harm-reduction practice
// quality. Recomputed from the aggregate after every processed event;
// the trend compares against the previous overall score.

// trendTolerance is the band within which the score counts as stable.
const trendTolerance = 2.0

// computeSafety derives the safety score from the current aggregate.
func computeSafety(agg *aggregate, now time.Time) domain.SafetyScore {
	experiences := agg.Counters[domain.CounterExperiencesLogged]
	detailed := agg.Counters[domain.CounterDetailedExperiences]
	practices := agg.Counters[domain.CounterSafetyPractices]
	quests := agg.Counters[domain.CounterQuestsCompleted]
	reviews := agg.Counters[domain.CounterKnowledgeReviews]
	loggingStreak := agg.Streaks[domain.StreakDailyLogging].CurrentCount

	components := map[string]float64{
		domain.SafetyPreparation: ratioScore(detailed, experiences),
		domain.SafetyPractice:    ratioScore(practices, experiences),
		domain.SafetyKnowledge:   clamp100(float64(quests)*20 + float64(reviews)*5),
		domain.SafetyConsistency: clamp100(float64(loggingStreak) * 10),
	}

	overall := 0.0
	for _, v := range components {
		overall += v
	}
	overall /= float64(len(components))

	trend := domain.TrendStable
	if !agg.Safety.LastUpdated.IsZero() {
		switch {
		case overall > agg.Safety.OverallScore+trendTolerance:
			trend = domain.TrendImproving
		case overall < agg.Safety.OverallScore-trendTolerance:
			trend = domain.TrendDeclining
		}
	}

	return domain.SafetyScore{
		OverallScore: overall,
		Components:   components,
		Trend:        trend,
		LastUpdated:  now,
	}
}

// ratioScore scores num/denom as a 0–100 percentage. With no recorded
// activity the component is neutral (50).
func ratioScore(num, denom int64) float64 {
	if denom <= 0 {
		return 50
	}
	return clamp100(float64(num) / float64(denom) * 100)
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
