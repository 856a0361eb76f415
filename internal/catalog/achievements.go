package catalog

import "github.com/sage-journal/sage/internal/domain"

// ─── Achievement Definitions ────────────────────────────────────────────────
// 14 achievements across 5 categories. Unlock order is definition order.

func defaultAchievements() []domain.Achievement {
	return []domain.Achievement{
		// ── Milestones ─────────────────────────────────────────────────
		{
			ID: "first_entry", Name: "First Entry", Tier: domain.TierBronze,
			Category:    domain.CatMilestones,
			Description: "Log your first experience.",
			XPReward:    50,
			Requirements: []domain.Requirement{
				{Type: domain.ReqExperiencesLogged, Target: 1},
			},
		},
		{
			ID: "ten_entries", Name: "Keeping Record", Tier: domain.TierSilver,
			Category:    domain.CatMilestones,
			Description: "Log 10 experiences.",
			XPReward:    150,
			Requirements: []domain.Requirement{
				{Type: domain.ReqExperiencesLogged, Target: 10},
			},
		},
		{
			ID: "fifty_entries", Name: "Chronicler", Tier: domain.TierGold,
			Category:    domain.CatMilestones,
			Description: "Log 50 experiences.",
			XPReward:    500,
			Requirements: []domain.Requirement{
				{Type: domain.ReqExperiencesLogged, Target: 50},
			},
		},
		{
			ID: "detail_oriented", Name: "Detail Oriented", Tier: domain.TierSilver,
			Category:    domain.CatMilestones,
			Description: "Complete 5 detailed experience reports.",
			XPReward:    200,
			Requirements: []domain.Requirement{
				{Type: domain.ReqDetailedExperiences, Target: 5},
			},
		},

		// ── Consistency ────────────────────────────────────────────────
		{
			ID: "week_streak", Name: "Week of Awareness", Tier: domain.TierSilver,
			Category:    domain.CatConsistency,
			Description: "Log experiences 7 days in a row.",
			XPReward:    200,
			Requirements: []domain.Requirement{
				{Type: domain.ReqConsecutiveDaysLogging, Target: 7},
			},
		},
		{
			ID: "month_streak", Name: "Monthly Mindful", Tier: domain.TierGold,
			Category:    domain.CatConsistency,
			Description: "Log experiences 30 days in a row.",
			XPReward:    1000,
			Requirements: []domain.Requirement{
				{Type: domain.ReqConsecutiveDaysLogging, Target: 30},
			},
		},
		{
			ID: "regular_checkin", Name: "Regular Check-in", Tier: domain.TierBronze,
			Category:    domain.CatConsistency,
			Description: "Open the app 5 days in a row.",
			XPReward:    75,
			Requirements: []domain.Requirement{
				{Type: domain.ReqAppUsageStreak, Target: 5},
			},
		},

		// ── Safety ─────────────────────────────────────────────────────
		{
			ID: "safety_first", Name: "Safety First", Tier: domain.TierBronze,
			Category:    domain.CatSafety,
			Description: "Use a harm-reduction practice for the first time.",
			XPReward:    50,
			Requirements: []domain.Requirement{
				{Type: domain.ReqSafetyPracticesUsed, Target: 1},
			},
		},
		{
			ID: "safety_habit", Name: "Safety Habit", Tier: domain.TierGold,
			Category:    domain.CatSafety,
			Description: "Use harm-reduction practices 25 times.",
			XPReward:    400,
			Requirements: []domain.Requirement{
				{Type: domain.ReqSafetyPracticesUsed, Target: 25},
			},
		},

		// ── Knowledge ──────────────────────────────────────────────────
		{
			ID: "first_quest", Name: "Curious Mind", Tier: domain.TierBronze,
			Category:    domain.CatKnowledge,
			Description: "Complete your first knowledge quest.",
			XPReward:    100,
			Requirements: []domain.Requirement{
				{Type: domain.ReqQuestsCompleted, Target: 1},
			},
		},
		{
			ID: "scholar", Name: "Scholar", Tier: domain.TierGold,
			Category:    domain.CatKnowledge,
			Description: "Complete 5 knowledge quests.",
			XPReward:    500,
			Requirements: []domain.Requirement{
				{Type: domain.ReqQuestsCompleted, Target: 5},
			},
		},

		// ── Integration ────────────────────────────────────────────────
		{
			ID: "first_integration", Name: "Looking Inward", Tier: domain.TierBronze,
			Category:    domain.CatIntegration,
			Description: "Complete an integration session.",
			XPReward:    75,
			Requirements: []domain.Requirement{
				{Type: domain.ReqIntegrationSessions, Target: 1},
			},
		},
		{
			ID: "integration_10", Name: "Integrated", Tier: domain.TierSilver,
			Category:    domain.CatIntegration,
			Description: "Complete 10 integration sessions.",
			XPReward:    300,
			Requirements: []domain.Requirement{
				{Type: domain.ReqIntegrationSessions, Target: 10},
			},
		},
		{
			ID: "level_10", Name: "Seasoned", Tier: domain.TierPlatinum,
			Category:    domain.CatMilestones,
			Description: "Reach level 10.",
			XPReward:    1000,
			Requirements: []domain.Requirement{
				{Type: domain.ReqLevelReached, Target: 10},
			},
		},
	}
}
