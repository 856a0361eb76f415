// Package catalog provides the static progression content: achievement
// definitions, knowledge quests, and weekly challenge templates.
// The catalog is loaded once at startup, immutable, and versionless —
// engines take a *Catalog so tests can supply synthetic content.
package catalog

import "github.com/sage-journal/sage/internal/domain"

// Catalog bundles all static progression definitions.
type Catalog struct {
	Achievements       []domain.Achievement
	Quests             []domain.KnowledgeQuest
	ChallengeTemplates []domain.ChallengeTemplate

	questsByID map[string]domain.KnowledgeQuest
}

// New builds a catalog from explicit definitions.
func New(achievements []domain.Achievement, quests []domain.KnowledgeQuest, templates []domain.ChallengeTemplate) *Catalog {
	c := &Catalog{
		Achievements:       achievements,
		Quests:             quests,
		ChallengeTemplates: templates,
		questsByID:         make(map[string]domain.KnowledgeQuest, len(quests)),
	}
	for _, q := range quests {
		c.questsByID[q.ID] = q
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultAchievements(), defaultQuests(), defaultChallengeTemplates())
}

// Quest looks up a quest by id.
func (c *Catalog) Quest(id string) (domain.KnowledgeQuest, bool) {
	q, ok := c.questsByID[id]
	return q, ok
}

// Achievement looks up an achievement by id.
func (c *Catalog) Achievement(id string) (domain.Achievement, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Achievement{}, false
}
