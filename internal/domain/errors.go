package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Precondition
// violations are reported as typed failures, never panics.

var (
	// XP / level errors
	ErrNegativeXP = errors.New("xp total must be non-negative")

	// Quest errors
	ErrUnknownQuest       = errors.New("quest not found in catalog")
	ErrQuestNotStarted    = errors.New("quest has not been started")
	ErrQuestAlreadyActive = errors.New("quest already started")
	ErrQuestCompleted     = errors.New("quest already completed")
	ErrPrerequisiteNotMet = errors.New("quest prerequisites not completed")
	ErrIncorrectAnswer    = errors.New("answer does not match this step")
	ErrStepOutOfRange     = errors.New("quest step index out of range")
)
