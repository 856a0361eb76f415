// Package domain holds the progression engine's core types.
// The engine converts user-activity events into durable progression
// state: XP, levels, achievements, streaks, quests, and challenges.
// Domain types are pure — no infrastructure dependency.
package domain

import "time"

// ─── Level / XP Types ───────────────────────────────────────────────────────

// UserLevel is the user's level state, always derived from TotalXP.
// Invariant: TotalXP == sum of RequiredXP for levels 1..CurrentLevel-1
// plus CurrentXP. Never mutated field-by-field.
type UserLevel struct {
	CurrentLevel  int   `json:"current_level"`
	CurrentXP     int64 `json:"current_xp"`
	XPToNextLevel int64 `json:"xp_to_next_level"`
	TotalXP       int64 `json:"total_xp"`
}

// XPSource categorizes how XP was earned.
type XPSource string

const (
	XPEvent       XPSource = "EVENT"
	XPAchievement XPSource = "ACHIEVEMENT"
	XPQuest       XPSource = "QUEST"
	XPChallenge   XPSource = "CHALLENGE"
)

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakType identifies an activity category tracked for continuity.
type StreakType string

const (
	StreakDailyLogging        StreakType = "daily_logging"
	StreakIntegrationPractice StreakType = "integration_practice"
	StreakAppUsage            StreakType = "app_usage"
)

// Streak tracks consecutive day-units of activity in one category.
// A gap of more than one whole day resets CurrentCount to 1; the prior
// run survives only through BestCount.
type Streak struct {
	Type         StreakType `json:"type"`
	CurrentCount int        `json:"current_count"`
	BestCount    int        `json:"best_count"`
	LastActivity time.Time  `json:"last_activity"` // zero = never active
	IsActive     bool       `json:"is_active"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatMilestones  AchievementCategory = "milestones"
	CatConsistency AchievementCategory = "consistency"
	CatSafety      AchievementCategory = "safety"
	CatKnowledge   AchievementCategory = "knowledge"
	CatIntegration AchievementCategory = "integration"
)

// AchievementTier ranks achievements within a category.
type AchievementTier string

const (
	TierBronze   AchievementTier = "bronze"
	TierSilver   AchievementTier = "silver"
	TierGold     AchievementTier = "gold"
	TierPlatinum AchievementTier = "platinum"
)

// RequirementType names the aggregate metric a requirement compares
// against. Every type is evaluated against real counters — none are
// stubbed to true.
type RequirementType string

const (
	ReqExperiencesLogged      RequirementType = "EXPERIENCES_LOGGED"
	ReqDetailedExperiences    RequirementType = "DETAILED_EXPERIENCES"
	ReqSafetyPracticesUsed    RequirementType = "SAFETY_PRACTICES_USED"
	ReqIntegrationSessions    RequirementType = "INTEGRATION_SESSIONS"
	ReqConsecutiveDaysLogging RequirementType = "CONSECUTIVE_DAYS_LOGGING"
	ReqAppUsageStreak         RequirementType = "APP_USAGE_STREAK"
	ReqQuestsCompleted        RequirementType = "QUESTS_COMPLETED"
	ReqChallengesCompleted    RequirementType = "CHALLENGES_COMPLETED"
	ReqLevelReached           RequirementType = "LEVEL_REACHED"
	ReqTotalXP                RequirementType = "TOTAL_XP"
)

// Requirement is a single unlock predicate: the named metric must meet
// or exceed Target. All requirements of an achievement are ANDed.
type Requirement struct {
	Type      RequirementType   `json:"type"`
	Target    int64             `json:"target"`
	TimeFrame string            `json:"time_frame,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Achievement is an immutable catalog entry.
type Achievement struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     AchievementCategory `json:"category"`
	Tier         AchievementTier     `json:"tier"`
	XPReward     int64               `json:"xp_reward"`
	Requirements []Requirement       `json:"requirements"`
}

// UserAchievement records a single unlock. Created exactly once per
// achievement id; the unlocked set only ever grows.
type UserAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	IsCompleted   bool      `json:"is_completed"`
}

// ─── Safety Score ───────────────────────────────────────────────────────────

// SafetyTrend describes the direction of the overall score.
type SafetyTrend string

const (
	TrendImproving SafetyTrend = "improving"
	TrendStable    SafetyTrend = "stable"
	TrendDeclining SafetyTrend = "declining"
)

// Safety score component names.
const (
	SafetyPreparation = "preparation"
	SafetyPractice    = "practice"
	SafetyKnowledge   = "knowledge"
	SafetyConsistency = "consistency"
)

// SafetyScore is a derived composite summarizing harm-reduction
// practice quality. Recomputed after every processed event.
type SafetyScore struct {
	OverallScore float64            `json:"overall_score"` // 0–100
	Components   map[string]float64 `json:"components"`
	Trend        SafetyTrend        `json:"trend"`
	LastUpdated  time.Time          `json:"last_updated"`
}
