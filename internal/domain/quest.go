package domain

import "time"

// ─── Knowledge Quest Types ──────────────────────────────────────────────────

// QuestStepType categorizes a quest step.
type QuestStepType string

const (
	StepInfo     QuestStepType = "info"
	StepQuiz     QuestStepType = "quiz"
	StepPractice QuestStepType = "practice"
)

// QuestStep is one ordered step of a knowledge quest. Quiz steps carry
// a RequiredAnswer; other step types complete on sight.
type QuestStep struct {
	ID             string        `json:"id"`
	Type           QuestStepType `json:"type"`
	Content        string        `json:"content"`
	RequiredAnswer string        `json:"required_answer,omitempty"`
}

// KnowledgeQuest is an immutable catalog entry: a multi-step guided
// learning unit. Prerequisites name quests that must be completed
// before this one can be started.
type KnowledgeQuest struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Steps         []QuestStep `json:"steps"`
	Prerequisites []string    `json:"prerequisites,omitempty"`
}

// UserQuestProgress tracks one user's position in a quest.
// Once IsCompleted is true the record is immutable.
type UserQuestProgress struct {
	QuestID          string          `json:"quest_id"`
	StartedAt        time.Time       `json:"started_at"`
	CurrentStepIndex int             `json:"current_step_index"`
	StepProgress     map[string]bool `json:"step_progress"`
	IsCompleted      bool            `json:"is_completed"`
	CompletedAt      time.Time       `json:"completed_at,omitempty"`
}

// ─── Weekly Challenge Types ─────────────────────────────────────────────────

// ChallengeRequirement ties a counter to a target. Completion ratio is
// min(1, counter/target).
type ChallengeRequirement struct {
	Metric      CounterKey `json:"metric"`
	Target      int64      `json:"target"`
	Description string     `json:"description"`
}

// WeeklyChallenge is a time-boxed goal instantiated from a template
// for a specific ISO week.
type WeeklyChallenge struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	WeekISO      string                 `json:"week_iso"` // "2026-W34"
	StartDate    time.Time              `json:"start_date"`
	EndDate      time.Time              `json:"end_date"`
	Requirements []ChallengeRequirement `json:"requirements"`
	XPReward     int64                  `json:"xp_reward"`
	// Baseline captures the counter values at instantiation so
	// requirement ratios measure activity within the week only.
	Baseline Counters `json:"baseline,omitempty"`
}

// IsExpired reports whether the challenge window has closed.
func (c WeeklyChallenge) IsExpired(now time.Time) bool {
	return now.After(c.EndDate)
}

// ChallengeProgress is the user's progress on the active challenge.
// Progress is the mean of per-requirement completion ratios, each
// clamped to 1.0. Completion is edge-triggered exactly once.
type ChallengeProgress struct {
	ChallengeID string    `json:"challenge_id"`
	Progress    float64   `json:"progress"` // 0.0–1.0
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// ChallengeTemplate defines the pool a weekly challenge is drawn from.
type ChallengeTemplate struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Requirements []ChallengeRequirement `json:"requirements"`
	RewardXP     int64                  `json:"reward_xp"`
}
