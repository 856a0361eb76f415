package progression

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/sage-journal/sage/internal/domain"
	"github.com/sage-journal/sage/internal/infra/metrics"
)

// ─── Weekly Challenge Tracker ───────────────────────────────────────────────
// One challenge per ISO week, drawn deterministically from the
// template pool and reused until the week rolls over. Progress is
// recomputed from scratch on every event as the mean of per-requirement
// completion ratios; completion is edge-triggered exactly once.

// ensureChallengeLocked instantiates the current week's challenge if
// the active one is missing or from a previous week. Caller holds mu.
func (e *Engine) ensureChallengeLocked(now time.Time) {
	week := isoWeek(now)
	if e.agg.Challenge != nil && e.agg.Challenge.WeekISO == week {
		// The progress record can be lost independently of the
		// challenge (corrupt slice, partial persist). Rebuild it
		// rather than tracking against a stale or missing record.
		if e.agg.ChallengeProgress == nil || e.agg.ChallengeProgress.ChallengeID != e.agg.Challenge.ID {
			e.agg.ChallengeProgress = &domain.ChallengeProgress{ChallengeID: e.agg.Challenge.ID}
		}
		return
	}
	if len(e.cat.ChallengeTemplates) == 0 {
		e.agg.Challenge = nil
		e.agg.ChallengeProgress = nil
		return
	}

	// Deterministic pick per week so a restart mid-week reuses the
	// same template.
	h := fnv.New32a()
	h.Write([]byte(week))
	tmpl := e.cat.ChallengeTemplates[int(h.Sum32())%len(e.cat.ChallengeTemplates)]

	challenge := domain.WeeklyChallenge{
		ID:           fmt.Sprintf("challenge-%s", week),
		Title:        tmpl.Title,
		Description:  tmpl.Description,
		WeekISO:      week,
		StartDate:    mondayOf(now),
		EndDate:      nextMonday(now),
		Requirements: append([]domain.ChallengeRequirement(nil), tmpl.Requirements...),
		XPReward:     tmpl.RewardXP,
		Baseline:     e.agg.Counters.Clone(),
	}
	e.agg.Challenge = &challenge
	e.agg.ChallengeProgress = &domain.ChallengeProgress{ChallengeID: challenge.ID}
}

// updateChallengeLocked recomputes challenge progress and handles the
// one-time completion transition. Returns the XP awarded (0 unless the
// challenge completed on this call). Caller holds mu.
func (e *Engine) updateChallengeLocked(now time.Time) (int64, bool) {
	e.ensureChallengeLocked(now)
	if e.agg.Challenge == nil {
		return 0, false
	}

	challenge := e.agg.Challenge
	progress := e.agg.ChallengeProgress
	wasCompleted := progress.Completed

	progress.Progress = challengeProgress(*challenge, e.agg.Counters)

	if progress.Progress >= 1.0 && !wasCompleted {
		progress.Completed = true
		progress.CompletedAt = now
		e.agg.Counters[domain.CounterChallengesCompleted]++
		e.awardXPLocked(challenge.XPReward, domain.XPChallenge)
		metrics.ChallengesCompleted.Inc()
		return challenge.XPReward, true
	}
	return 0, false
}

// challengeProgress computes the mean of per-requirement completion
// ratios against the challenge's within-week counter deltas, each
// ratio clamped to 1.0.
func challengeProgress(c domain.WeeklyChallenge, counters domain.Counters) float64 {
	if len(c.Requirements) == 0 {
		return 0
	}
	sum := 0.0
	for _, req := range c.Requirements {
		if req.Target <= 0 {
			sum += 1.0
			continue
		}
		delta := counters[req.Metric] - c.Baseline[req.Metric]
		if delta < 0 {
			delta = 0
		}
		ratio := float64(delta) / float64(req.Target)
		if ratio > 1.0 {
			ratio = 1.0
		}
		sum += ratio
	}
	return sum / float64(len(c.Requirements))
}

// isoWeek returns "YYYY-Www" for the given time.
func isoWeek(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// mondayOf returns the Monday 00:00 UTC of t's week.
func mondayOf(t time.Time) time.Time {
	day := dayOf(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -offset)
}

// nextMonday returns the next Monday at 00:00 UTC after t.
func nextMonday(t time.Time) time.Time {
	return mondayOf(t).AddDate(0, 0, 7)
}
