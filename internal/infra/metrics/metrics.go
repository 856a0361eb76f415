// Package metrics provides Prometheus metrics for the progression
// engine: counters for processed events, XP and unlocks, and a
// histogram for persistence latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Event Processing ───────────────────────────────────────────────────────

// EventsProcessed tracks processed events by type.
var EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "events_processed_total",
	Help:      "Total gamification events processed.",
}, []string{"type"})

// XPAwarded tracks XP granted by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "xp_awarded_total",
	Help:      "Total experience points awarded.",
}, []string{"source"})

// LevelUps tracks level-up transitions.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "level_ups_total",
	Help:      "Total level-up transitions.",
})

// ─── Unlocks ────────────────────────────────────────────────────────────────

// AchievementsUnlocked tracks achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// QuestsCompleted tracks completed knowledge quests.
var QuestsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "quests_completed_total",
	Help:      "Total knowledge quests completed.",
})

// ChallengesCompleted tracks completed weekly challenges.
var ChallengesCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "challenges_completed_total",
	Help:      "Total weekly challenges completed.",
})

// ─── Side Effects ───────────────────────────────────────────────────────────

// NotificationsEmitted tracks notifications by type.
var NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "notifications_emitted_total",
	Help:      "Total notifications emitted.",
}, []string{"type"})

// PersistLatency tracks snapshot persistence duration in seconds.
var PersistLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "sage",
	Name:      "persist_latency_seconds",
	Help:      "State snapshot persistence duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
})

// PersistFailures tracks failed persistence attempts.
var PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sage",
	Name:      "persist_failures_total",
	Help:      "Total failed state persistence attempts.",
})
