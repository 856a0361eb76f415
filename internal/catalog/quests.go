package catalog

import "github.com/sage-journal/sage/internal/domain"

// ─── Knowledge Quest Definitions ────────────────────────────────────────────
// Linear step progression. Quiz steps carry a required answer matched
// case-insensitively; info and practice steps complete on advance.

func defaultQuests() []domain.KnowledgeQuest {
	return []domain.KnowledgeQuest{
		{
			ID:          "basics_set_setting",
			Title:       "Set and Setting",
			Description: "Why mindset and environment shape every experience.",
			Steps: []domain.QuestStep{
				{ID: "ss_intro", Type: domain.StepInfo,
					Content: "Set is your mindset going in; setting is the physical and social environment around you."},
				{ID: "ss_quiz", Type: domain.StepQuiz,
					Content:        "What do we call the physical and social environment of an experience?",
					RequiredAnswer: "setting"},
				{ID: "ss_practice", Type: domain.StepPractice,
					Content: "Before your next entry, note one thing about your environment that helped or hurt."},
			},
		},
		{
			ID:          "basics_dosing",
			Title:       "Start Low, Go Slow",
			Description: "The foundation of dose awareness.",
			Steps: []domain.QuestStep{
				{ID: "dose_intro", Type: domain.StepInfo,
					Content: "A threshold dose reveals how your body responds before committing to more."},
				{ID: "dose_quiz", Type: domain.StepQuiz,
					Content:        "Should a first dose be high or low?",
					RequiredAnswer: "low"},
			},
		},
		{
			ID:            "integration_reflection",
			Title:         "Reflection and Integration",
			Description:   "Turning experiences into lasting insight.",
			Prerequisites: []string{"basics_set_setting"},
			Steps: []domain.QuestStep{
				{ID: "int_intro", Type: domain.StepInfo,
					Content: "Integration is the deliberate work of carrying insights from an experience into daily life."},
				{ID: "int_quiz", Type: domain.StepQuiz,
					Content:        "What do we call the practice of carrying insights into daily life?",
					RequiredAnswer: "integration"},
				{ID: "int_practice", Type: domain.StepPractice,
					Content: "Write a short reflection on your most recent logged experience."},
			},
		},
	}
}

// ─── Weekly Challenge Templates ─────────────────────────────────────────────

func defaultChallengeTemplates() []domain.ChallengeTemplate {
	return []domain.ChallengeTemplate{
		{
			Title:       "Consistent Logger",
			Description: "Log 5 experiences this week.",
			RewardXP:    250,
			Requirements: []domain.ChallengeRequirement{
				{Metric: domain.CounterExperiencesLogged, Target: 5, Description: "Log 5 experiences"},
			},
		},
		{
			Title:       "Safety Week",
			Description: "Use harm-reduction practices 3 times and log 3 experiences.",
			RewardXP:    300,
			Requirements: []domain.ChallengeRequirement{
				{Metric: domain.CounterSafetyPractices, Target: 3, Description: "Use 3 safety practices"},
				{Metric: domain.CounterExperiencesLogged, Target: 3, Description: "Log 3 experiences"},
			},
		},
		{
			Title:       "Deep Diver",
			Description: "Complete 2 detailed reports and 1 integration session.",
			RewardXP:    350,
			Requirements: []domain.ChallengeRequirement{
				{Metric: domain.CounterDetailedExperiences, Target: 2, Description: "Complete 2 detailed reports"},
				{Metric: domain.CounterIntegrationSessions, Target: 1, Description: "Complete 1 integration session"},
			},
		},
		{
			Title:       "Student of the Craft",
			Description: "Review knowledge content 4 times this week.",
			RewardXP:    200,
			Requirements: []domain.ChallengeRequirement{
				{Metric: domain.CounterKnowledgeReviews, Target: 4, Description: "Review knowledge 4 times"},
			},
		},
	}
}
