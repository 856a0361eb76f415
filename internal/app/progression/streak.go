package progression

import (
	"time"

	"github.com/sage-journal/sage/internal/domain"
)

// ─── Streak Tracker ─────────────────────────────────────────────────────────
// Per-category continuity state machine. A streak extends on
// consecutive day-units, is idempotent within a day, and resets
// silently to 1 when the gap exceeds one whole day. The prior run
// survives only through BestCount.

// streakForEvent is the static event→streak mapping. Event types not
// listed here update no streak.
var streakForEvent = map[domain.EventType]domain.StreakType{
	domain.EventExperienceCreated:    domain.StreakDailyLogging,
	domain.EventIntegrationCompleted: domain.StreakIntegrationPractice,
	domain.EventAppLaunched:          domain.StreakAppUsage,
}

// dayOf truncates a time to its UTC day.
func dayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// updateStreak applies an activity at time t and returns the new
// streak state.
func updateStreak(s domain.Streak, t time.Time) domain.Streak {
	today := dayOf(t)

	switch {
	case s.LastActivity.IsZero():
		// First activity ever
		s.CurrentCount = 1

	case today.Equal(dayOf(s.LastActivity)):
		// Same day — already counted

	default:
		gapDays := int(today.Sub(dayOf(s.LastActivity)) / (24 * time.Hour))
		if gapDays > 1 {
			// Streak broken — reset silently
			s.CurrentCount = 1
		} else {
			s.CurrentCount++
		}
	}

	if s.CurrentCount > s.BestCount {
		s.BestCount = s.CurrentCount
	}
	s.LastActivity = today
	s.IsActive = true
	return s
}
