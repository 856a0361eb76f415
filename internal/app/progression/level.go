// Package progression implements the progression and reward engine:
// it converts user-activity events into XP, levels, achievements,
// streaks, quest and challenge progress, and a derived safety score.
package progression

import (
	"github.com/sage-journal/sage/internal/domain"
)

// ─── Leveling Calculator ────────────────────────────────────────────────────
// Pure, stateless. Quadratic XP curve with a floor of 100.

// RequiredXP returns the XP needed to clear the given level.
// requiredXP(level) = max(100, level² × 100).
func RequiredXP(level int) int64 {
	if level < 1 {
		return 100
	}
	xp := int64(level) * int64(level) * 100
	if xp < 100 {
		xp = 100
	}
	return xp
}

// LevelFromTotalXP derives the full UserLevel from a total XP amount.
// Walks the curve from level 1, subtracting each level's requirement;
// the remainder becomes CurrentXP. Negative totals are rejected.
func LevelFromTotalXP(total int64) (domain.UserLevel, error) {
	if total < 0 {
		return domain.UserLevel{}, domain.ErrNegativeXP
	}

	level := 1
	remaining := total
	for remaining >= RequiredXP(level) {
		remaining -= RequiredXP(level)
		level++
	}

	return domain.UserLevel{
		CurrentLevel:  level,
		CurrentXP:     remaining,
		XPToNextLevel: RequiredXP(level),
		TotalXP:       total,
	}, nil
}

// ProgressPct returns progress toward the next level in [0, 1].
func ProgressPct(ul domain.UserLevel) float64 {
	if ul.XPToNextLevel <= 0 {
		return 0
	}
	p := float64(ul.CurrentXP) / float64(ul.XPToNextLevel)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
