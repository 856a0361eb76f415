package progression

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sage-journal/sage/internal/domain"
	"github.com/sage-journal/sage/internal/infra/metrics"
)

// ─── Notifications ──────────────────────────────────────────────────────────
// Per-result notifications are always returned to the caller. The
// pending feed (what the UI surfaces later) additionally honors the
// policy: daily cap and quiet hours.

// buildNotifications assembles the notification list for one result.
func (e *Engine) buildNotifications(result domain.GamificationResult, event domain.GamificationEvent, challengeDone bool, now time.Time) []domain.Notification {
	var notifs []domain.Notification

	if result.LevelUp {
		notifs = append(notifs, domain.Notification{
			ID:        newNotificationID(),
			Type:      domain.NotifyLevelUp,
			Title:     fmt.Sprintf("Level %d!", result.NewLevel),
			Body:      fmt.Sprintf("You reached level %d.", result.NewLevel),
			CreatedAt: now,
		})
	}

	for _, a := range result.NewAchievements {
		notifs = append(notifs, domain.Notification{
			ID:        newNotificationID(),
			Type:      domain.NotifyAchievement,
			Title:     "Achievement unlocked",
			Body:      fmt.Sprintf("%s — %s (+%d XP)", a.Name, a.Description, a.XPReward),
			CreatedAt: now,
		})
	}

	if event.Type == domain.EventQuestCompleted {
		notifs = append(notifs, domain.Notification{
			ID:        newNotificationID(),
			Type:      domain.NotifyQuestComplete,
			Title:     "Quest complete",
			Body:      "You finished a knowledge quest.",
			CreatedAt: now,
		})
	}

	if challengeDone && e.agg.Challenge != nil {
		notifs = append(notifs, domain.Notification{
			ID:        newNotificationID(),
			Type:      domain.NotifyChallengeComplete,
			Title:     "Challenge complete",
			Body:      fmt.Sprintf("%s (+%d XP)", e.agg.Challenge.Title, e.agg.Challenge.XPReward),
			CreatedAt: now,
		})
	}

	for _, n := range notifs {
		metrics.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()
	}
	return notifs
}

// enqueuePendingLocked adds notifications to the pending feed,
// applying the policy. Caller holds mu.
func (e *Engine) enqueuePendingLocked(notifs []domain.Notification, now time.Time) {
	for _, n := range notifs {
		if e.todayPendingCount(now) >= e.policy.MaxPerDay {
			return // Daily cap reached
		}
		if isQuietHour(e.policy, now) {
			return // Suppressed — quiet hours
		}
		e.pending = append(e.pending, n)
	}
	if len(e.pending) > pendingNotificationCap {
		e.pending = e.pending[len(e.pending)-pendingNotificationCap:]
	}
}

// todayPendingCount counts feed entries created on the same day as t.
func (e *Engine) todayPendingCount(t time.Time) int {
	day := dayOf(t)
	count := 0
	for _, n := range e.pending {
		if dayOf(n.CreatedAt).Equal(day) {
			count++
		}
	}
	return count
}

// PendingNotifications returns unshown feed entries.
func (e *Engine) PendingNotifications() []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []domain.Notification
	for _, n := range e.pending {
		if !n.Shown {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationShown marks a feed entry as shown.
func (e *Engine) MarkNotificationShown(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.pending {
		if e.pending[i].ID == id {
			e.pending[i].Shown = true
			return true
		}
	}
	return false
}

// isQuietHour reports whether t falls within the policy's quiet hours.
func isQuietHour(p domain.NotificationPolicy, t time.Time) bool {
	startHour, startMin := parseHHMM(p.QuietStart)
	endHour, endMin := parseHHMM(p.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
