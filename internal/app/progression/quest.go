package progression

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sage-journal/sage/internal/domain"
	"github.com/sage-journal/sage/internal/infra/metrics"
)

// ─── Knowledge Quest Tracker ────────────────────────────────────────────────
// Linear step progression. Quiz steps require a matching answer
// (case-insensitive, trimmed); info and practice steps complete on
// advance. A completed quest is immutable, and completion feeds a
// QUEST_COMPLETED event through the processor for XP and evaluation.

// StartQuest begins a quest, enforcing prerequisites.
func (e *Engine) StartQuest(questID string) (domain.UserQuestProgress, error) {
	return e.StartQuestAt(questID, time.Now())
}

// StartQuestAt begins a quest at a given time, for testability.
func (e *Engine) StartQuestAt(questID string, now time.Time) (domain.UserQuestProgress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	quest, ok := e.cat.Quest(questID)
	if !ok {
		return domain.UserQuestProgress{}, domain.ErrUnknownQuest
	}
	if existing, started := e.agg.Quests[questID]; started {
		if existing.IsCompleted {
			return existing, domain.ErrQuestCompleted
		}
		return existing, domain.ErrQuestAlreadyActive
	}
	for _, prereq := range quest.Prerequisites {
		p, done := e.agg.Quests[prereq]
		if !done || !p.IsCompleted {
			return domain.UserQuestProgress{}, domain.ErrPrerequisiteNotMet
		}
	}

	progress := domain.UserQuestProgress{
		QuestID:      questID,
		StartedAt:    now,
		StepProgress: make(map[string]bool, len(quest.Steps)),
	}
	e.agg.Quests[questID] = progress
	e.persistLocked()
	e.publishLocked(now)
	return progress, nil
}

// AdvanceQuest attempts to complete the current step. For quiz steps
// the answer must match; other step types complete immediately and the
// answer is ignored. When the final step completes, the quest finishes
// and the returned result carries the processed QUEST_COMPLETED event.
func (e *Engine) AdvanceQuest(questID, answer string) (domain.UserQuestProgress, *domain.GamificationResult, error) {
	return e.AdvanceQuestAt(questID, answer, time.Now())
}

// AdvanceQuestAt advances a quest at a given time, for testability.
func (e *Engine) AdvanceQuestAt(questID, answer string, now time.Time) (domain.UserQuestProgress, *domain.GamificationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	quest, ok := e.cat.Quest(questID)
	if !ok {
		return domain.UserQuestProgress{}, nil, domain.ErrUnknownQuest
	}
	progress, started := e.agg.Quests[questID]
	if !started {
		return domain.UserQuestProgress{}, nil, domain.ErrQuestNotStarted
	}
	if progress.IsCompleted {
		return progress, nil, domain.ErrQuestCompleted
	}
	if progress.CurrentStepIndex >= len(quest.Steps) {
		return progress, nil, domain.ErrStepOutOfRange
	}

	step := quest.Steps[progress.CurrentStepIndex]
	if step.Type == domain.StepQuiz && !answerMatches(answer, step.RequiredAnswer) {
		return progress, nil, domain.ErrIncorrectAnswer
	}

	progress.StepProgress[step.ID] = true
	progress.CurrentStepIndex++

	var result *domain.GamificationResult
	if progress.CurrentStepIndex >= len(quest.Steps) {
		progress.IsCompleted = true
		progress.CompletedAt = now
		e.agg.Quests[questID] = progress
		metrics.QuestsCompleted.Inc()

		r := e.processLocked(domain.GamificationEvent{
			ID:        uuid.New().String(),
			Type:      domain.EventQuestCompleted,
			Timestamp: now,
			Metadata:  map[string]string{"quest_id": questID},
		})
		result = &r
	} else {
		e.agg.Quests[questID] = progress
	}

	e.persistLocked()
	e.publishLocked(now)
	return progress, result, nil
}

// AvailableQuests returns catalog quests whose prerequisites are all
// completed and which are not yet completed themselves.
func (e *Engine) AvailableQuests() []domain.KnowledgeQuest {
	snap := e.Snapshot()

	var out []domain.KnowledgeQuest
	for _, quest := range e.cat.Quests {
		if p, ok := snap.Quests[quest.ID]; ok && p.IsCompleted {
			continue
		}
		eligible := true
		for _, prereq := range quest.Prerequisites {
			p, ok := snap.Quests[prereq]
			if !ok || !p.IsCompleted {
				eligible = false
				break
			}
		}
		if eligible {
			out = append(out, quest)
		}
	}
	return out
}

// answerMatches compares a supplied answer to the required one,
// case-insensitively with surrounding whitespace ignored.
func answerMatches(answer, required string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(required))
}
