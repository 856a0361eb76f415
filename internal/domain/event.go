package domain

import "time"

// ─── Event Types ────────────────────────────────────────────────────────────

// EventType identifies a trackable user action.
type EventType string

const (
	EventExperienceCreated    EventType = "experience_created"
	EventExperienceDetailed   EventType = "experience_detailed"
	EventSafetyPractice       EventType = "safety_practice"
	EventIntegrationCompleted EventType = "integration_completed"
	EventQuestCompleted       EventType = "quest_completed"
	EventKnowledgeReviewed    EventType = "knowledge_reviewed"
	EventAppLaunched          EventType = "app_launched"
)

// GamificationEvent is the sole input to the engine. Immutable; kept
// only in a bounded most-recent ring, never persisted.
type GamificationEvent struct {
	ID           string            `json:"id"`
	Type         EventType         `json:"type"`
	Timestamp    time.Time         `json:"timestamp"`
	ExperienceID string            `json:"experience_id,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	XPAwarded    int64             `json:"xp_awarded"`
}

// GamificationResult is the sole output, produced fresh per event.
type GamificationResult struct {
	XPAwarded       int64                 `json:"xp_awarded"`
	NewAchievements []Achievement         `json:"new_achievements,omitempty"`
	StreakUpdates   map[StreakType]Streak `json:"streak_updates,omitempty"`
	LevelUp         bool                  `json:"level_up"`
	NewLevel        int                   `json:"new_level,omitempty"`
	Notifications   []Notification        `json:"notifications,omitempty"`
}

// ─── Aggregate Counters ─────────────────────────────────────────────────────

// CounterKey names an aggregate activity counter maintained by the
// processor and read by achievement and challenge evaluation.
type CounterKey string

const (
	CounterExperiencesLogged   CounterKey = "experiences_logged"
	CounterDetailedExperiences CounterKey = "detailed_experiences"
	CounterSafetyPractices     CounterKey = "safety_practices"
	CounterIntegrationSessions CounterKey = "integration_sessions"
	CounterQuestsCompleted     CounterKey = "quests_completed"
	CounterChallengesCompleted CounterKey = "challenges_completed"
	CounterKnowledgeReviews    CounterKey = "knowledge_reviews"
	CounterAppLaunches         CounterKey = "app_launches"
)

// Counters is the aggregate counter map.
type Counters map[CounterKey]int64

// Clone returns a copy of the counter map.
func (c Counters) Clone() Counters {
	cp := make(Counters, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes user-facing notifications.
type NotificationType string

const (
	NotifyLevelUp           NotificationType = "LEVEL_UP"
	NotifyAchievement       NotificationType = "ACHIEVEMENT_UNLOCKED"
	NotifyQuestComplete     NotificationType = "QUEST_COMPLETED"
	NotifyChallengeComplete NotificationType = "CHALLENGE_COMPLETED"
)

// Notification is a user-facing message produced as a processing side
// effect.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs the pending notification feed: a hard
// daily cap and quiet hours. Per-result notifications are never
// filtered — only the feed is.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy returns the default feed policy.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  6,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}

// ─── Aggregate Snapshot ─────────────────────────────────────────────────────

// Snapshot is an immutable copy of the full aggregate, handed to
// readers and subscribers. Producers must call Clone before publishing
// so readers never observe a partial update.
type Snapshot struct {
	Level             UserLevel                    `json:"level"`
	Achievements      []UserAchievement            `json:"achievements"`
	Streaks           map[StreakType]Streak        `json:"streaks"`
	Quests            map[string]UserQuestProgress `json:"quests"`
	Challenge         *WeeklyChallenge             `json:"challenge,omitempty"`
	ChallengeProgress *ChallengeProgress           `json:"challenge_progress,omitempty"`
	Safety            SafetyScore                  `json:"safety"`
	Counters          Counters                     `json:"counters"`
	TakenAt           time.Time                    `json:"taken_at"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.Achievements = append([]UserAchievement(nil), s.Achievements...)
	cp.Streaks = make(map[StreakType]Streak, len(s.Streaks))
	for k, v := range s.Streaks {
		cp.Streaks[k] = v
	}
	cp.Quests = make(map[string]UserQuestProgress, len(s.Quests))
	for k, v := range s.Quests {
		q := v
		q.StepProgress = make(map[string]bool, len(v.StepProgress))
		for id, done := range v.StepProgress {
			q.StepProgress[id] = done
		}
		cp.Quests[k] = q
	}
	if s.Challenge != nil {
		ch := *s.Challenge
		ch.Requirements = append([]ChallengeRequirement(nil), s.Challenge.Requirements...)
		cp.Challenge = &ch
	}
	if s.ChallengeProgress != nil {
		p := *s.ChallengeProgress
		cp.ChallengeProgress = &p
	}
	cp.Safety.Components = make(map[string]float64, len(s.Safety.Components))
	for k, v := range s.Safety.Components {
		cp.Safety.Components[k] = v
	}
	cp.Counters = s.Counters.Clone()
	return cp
}
