package progression

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sage-journal/sage/internal/catalog"
	"github.com/sage-journal/sage/internal/domain"
	"github.com/sage-journal/sage/internal/infra/metrics"
)

// ─── Event Processor ────────────────────────────────────────────────────────
// Single-writer discipline: every mutation happens inside the per-event
// handler under mu, including persistence, so events form a strictly
// serialized queue. Readers are served from an atomically swapped deep
// copy and observe either the pre- or fully-post-event state.

// recentEventCap bounds the most-recent event ring buffer.
const recentEventCap = 50

// pendingNotificationCap bounds the pending notification feed.
const pendingNotificationCap = 50

// baseXP is the fixed per-event-type XP table. Unknown types award 0.
var baseXP = map[domain.EventType]int64{
	domain.EventExperienceCreated:    25,
	domain.EventExperienceDetailed:   50,
	domain.EventSafetyPractice:       10,
	domain.EventIntegrationCompleted: 30,
	domain.EventQuestCompleted:       75,
	domain.EventKnowledgeReviewed:    15,
	domain.EventAppLaunched:          5,
}

// counterForEvent maps event types to the aggregate counter they bump.
var counterForEvent = map[domain.EventType]domain.CounterKey{
	domain.EventExperienceCreated:    domain.CounterExperiencesLogged,
	domain.EventExperienceDetailed:   domain.CounterDetailedExperiences,
	domain.EventSafetyPractice:       domain.CounterSafetyPractices,
	domain.EventIntegrationCompleted: domain.CounterIntegrationSessions,
	domain.EventQuestCompleted:       domain.CounterQuestsCompleted,
	domain.EventKnowledgeReviewed:    domain.CounterKnowledgeReviews,
	domain.EventAppLaunched:          domain.CounterAppLaunches,
}

// Engine is the progression and reward engine. It exclusively owns the
// in-memory aggregate for the lifetime of the process.
type Engine struct {
	mu    sync.Mutex
	store Store
	cat   *catalog.Catalog

	agg     *aggregate
	snap    atomic.Pointer[domain.Snapshot]
	recent  []domain.GamificationEvent
	pending []domain.Notification
	policy  domain.NotificationPolicy

	subMu  sync.Mutex
	subs   map[int]chan domain.Snapshot
	nextID int
}

// Option configures the engine.
type Option func(*Engine)

// WithNotificationPolicy overrides the pending-feed policy.
func WithNotificationPolicy(p domain.NotificationPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// New builds an engine, restoring state from the store. Corrupt or
// absent slices fall back to zero values.
func New(store Store, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		cat:    cat,
		agg:    loadAggregate(store),
		policy: domain.DefaultNotificationPolicy(),
		subs:   make(map[int]chan domain.Snapshot),
	}
	for _, opt := range opts {
		opt(e)
	}
	snap := e.agg.snapshot(time.Now())
	e.snap.Store(&snap)
	return e
}

// ProcessEvent is the single mutating entry point. The handler runs to
// completion — including persistence — before the next event begins.
func (e *Engine) ProcessEvent(event domain.GamificationEvent) (domain.GamificationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := e.processLocked(event)
	e.persistLocked()
	e.publishLocked(eventTime(event))
	return result, nil
}

// eventTime resolves the processing time for an event.
func eventTime(event domain.GamificationEvent) time.Time {
	if event.Timestamp.IsZero() {
		return time.Now()
	}
	return event.Timestamp
}

// processLocked runs the full pipeline for one event. Caller holds mu.
func (e *Engine) processLocked(event domain.GamificationEvent) domain.GamificationResult {
	now := eventTime(event)
	preLevel := e.agg.Level.CurrentLevel

	// 1. Base XP from the lookup table; an explicit XPAwarded on the
	// event overrides it.
	xpThisCall := int64(0)
	base := event.XPAwarded
	if base <= 0 {
		base = baseXP[event.Type]
	}
	if base > 0 {
		e.awardXPLocked(base, domain.XPEvent)
		xpThisCall += base
	}

	// 2. Aggregate counters.
	if key, ok := counterForEvent[event.Type]; ok {
		e.agg.Counters[key]++
	}

	// 3. Streaks — before achievement evaluation, so a streak
	// requirement unlocks on the exact event that reaches its target.
	streakUpdates := make(map[domain.StreakType]domain.Streak)
	if st, ok := streakForEvent[event.Type]; ok {
		cur, exists := e.agg.Streaks[st]
		if !exists {
			cur = domain.Streak{Type: st}
		}
		updated := updateStreak(cur, now)
		e.agg.Streaks[st] = updated
		streakUpdates[st] = updated
	}

	// 4. Achievements. Each unlock awards its own XP before
	// notifications read level state.
	newAchievements := e.checkAchievementsLocked(now)
	for _, a := range newAchievements {
		xpThisCall += a.XPReward
	}

	// 5. Weekly challenge progress (edge-triggered completion).
	challengeXP, challengeDone := e.updateChallengeLocked(now)
	xpThisCall += challengeXP

	// 6. Derived safety score.
	e.agg.Safety = computeSafety(e.agg, now)

	// 7. Recent-event ring.
	e.recent = append(e.recent, event)
	if len(e.recent) > recentEventCap {
		e.recent = e.recent[len(e.recent)-recentEventCap:]
	}

	postLevel := e.agg.Level.CurrentLevel
	levelUp := postLevel > preLevel

	result := domain.GamificationResult{
		XPAwarded:       xpThisCall,
		NewAchievements: newAchievements,
		StreakUpdates:   streakUpdates,
		LevelUp:         levelUp,
	}
	if levelUp {
		result.NewLevel = postLevel
		metrics.LevelUps.Inc()
	}
	result.Notifications = e.buildNotifications(result, event, challengeDone, now)
	e.enqueuePendingLocked(result.Notifications, now)

	metrics.EventsProcessed.WithLabelValues(string(event.Type)).Inc()
	return result
}

// awardXPLocked applies an XP delta and recomputes the level state.
func (e *Engine) awardXPLocked(amount int64, source domain.XPSource) {
	if amount <= 0 {
		return
	}
	level, err := LevelFromTotalXP(e.agg.Level.TotalXP + amount)
	if err != nil {
		log.Printf("[progression] award xp: %v", err)
		return
	}
	e.agg.Level = level
	metrics.XPAwarded.WithLabelValues(string(source)).Add(float64(amount))
}

// persistLocked writes the full aggregate snapshot. Failures are
// logged and retried wholesale on the next event.
func (e *Engine) persistLocked() {
	start := time.Now()
	if err := e.agg.persist(e.store); err != nil {
		metrics.PersistFailures.Inc()
		log.Printf("[progression] persist state: %v (will retry on next event)", err)
		return
	}
	metrics.PersistLatency.Observe(time.Since(start).Seconds())
}

// publishLocked swaps the read snapshot and notifies subscribers.
// One notification per serialized event, not per internal step.
func (e *Engine) publishLocked(now time.Time) {
	snap := e.agg.snapshot(now)
	e.snap.Store(&snap)

	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- snap.Clone():
		default:
			// Slow subscriber — drop rather than stall the queue.
		}
	}
}

// ─── Query Surface ──────────────────────────────────────────────────────────
// Read-only accessors served from the copy-on-write snapshot; they
// never block event processing.

// Snapshot returns the current aggregate snapshot.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.snap.Load().Clone()
}

// Level returns the current level state.
func (e *Engine) Level() domain.UserLevel {
	return e.snap.Load().Level
}

// Achievements returns all unlock records.
func (e *Engine) Achievements() []domain.UserAchievement {
	return e.Snapshot().Achievements
}

// Streaks returns the current streak map.
func (e *Engine) Streaks() map[domain.StreakType]domain.Streak {
	return e.Snapshot().Streaks
}

// QuestProgress returns progress for all started quests.
func (e *Engine) QuestProgress() map[string]domain.UserQuestProgress {
	return e.Snapshot().Quests
}

// ChallengeState returns the active weekly challenge and its progress.
// Both are nil before the first processed event of a week.
func (e *Engine) ChallengeState() (*domain.WeeklyChallenge, *domain.ChallengeProgress) {
	s := e.Snapshot()
	return s.Challenge, s.ChallengeProgress
}

// SafetyScore returns the derived safety score.
func (e *Engine) SafetyScore() domain.SafetyScore {
	return e.Snapshot().Safety
}

// Counters returns the aggregate activity counters.
func (e *Engine) Counters() domain.Counters {
	return e.Snapshot().Counters
}

// RecentEvents returns the bounded most-recent event ring, newest last.
func (e *Engine) RecentEvents() []domain.GamificationEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.GamificationEvent(nil), e.recent...)
}

// Catalog returns the engine's content catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// ─── Subscriptions ──────────────────────────────────────────────────────────

// Subscribe registers for post-event snapshots. The returned cancel
// function must be called to release the subscription.
func (e *Engine) Subscribe() (<-chan domain.Snapshot, func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	id := e.nextID
	e.nextID++
	ch := make(chan domain.Snapshot, 8)
	e.subs[id] = ch

	cancel := func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// newNotificationID returns a fresh notification id.
func newNotificationID() string {
	return uuid.New().String()
}
