package progression_test

import (
	"errors"
	"testing"

	"github.com/sage-journal/sage/internal/app/progression"
	"github.com/sage-journal/sage/internal/domain"
)

func TestRequiredXP_Floor(t *testing.T) {
	if got := progression.RequiredXP(1); got != 100 {
		t.Errorf("level 1: expected 100, got %d", got)
	}
	if got := progression.RequiredXP(2); got != 400 {
		t.Errorf("level 2: expected 400, got %d", got)
	}
	if got := progression.RequiredXP(10); got != 10000 {
		t.Errorf("level 10: expected 10000, got %d", got)
	}
}

func TestRequiredXP_StrictlyIncreasing(t *testing.T) {
	for level := 1; level < 100; level++ {
		if progression.RequiredXP(level+1) <= progression.RequiredXP(level) {
			t.Fatalf("requiredXP not increasing at level %d", level)
		}
	}
}

func TestLevelFromTotalXP_Identity(t *testing.T) {
	for total := int64(0); total <= 20000; total += 137 {
		ul, err := progression.LevelFromTotalXP(total)
		if err != nil {
			t.Fatalf("total %d: %v", total, err)
		}

		var accumulated int64
		for l := 1; l < ul.CurrentLevel; l++ {
			accumulated += progression.RequiredXP(l)
		}
		if accumulated+ul.CurrentXP != total {
			t.Fatalf("total %d: accumulated %d + current %d != total",
				total, accumulated, ul.CurrentXP)
		}
		if ul.XPToNextLevel != progression.RequiredXP(ul.CurrentLevel) {
			t.Fatalf("total %d: wrong xpToNextLevel %d", total, ul.XPToNextLevel)
		}
	}
}

func TestLevelFromTotalXP_NegativeRejected(t *testing.T) {
	_, err := progression.LevelFromTotalXP(-1)
	if !errors.Is(err, domain.ErrNegativeXP) {
		t.Errorf("expected ErrNegativeXP, got %v", err)
	}
}

func TestLevelFromTotalXP_250Scenario(t *testing.T) {
	// Level 1 requires 100 XP, level 2 requires 400.
	ul, err := progression.LevelFromTotalXP(250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ul.CurrentLevel != 2 {
		t.Errorf("expected level 2, got %d", ul.CurrentLevel)
	}
	if ul.CurrentXP != 150 {
		t.Errorf("expected 150 current XP, got %d", ul.CurrentXP)
	}
	if ul.TotalXP != 250 {
		t.Errorf("expected 250 total XP, got %d", ul.TotalXP)
	}
	if ul.XPToNextLevel != 400 {
		t.Errorf("expected 400 to next level, got %d", ul.XPToNextLevel)
	}
}

func TestProgressPct_Clamped(t *testing.T) {
	if p := progression.ProgressPct(domain.UserLevel{CurrentXP: 50, XPToNextLevel: 100}); p != 0.5 {
		t.Errorf("expected 0.5, got %f", p)
	}
	if p := progression.ProgressPct(domain.UserLevel{CurrentXP: 500, XPToNextLevel: 100}); p != 1.0 {
		t.Errorf("expected clamp to 1.0, got %f", p)
	}
	if p := progression.ProgressPct(domain.UserLevel{CurrentXP: 0, XPToNextLevel: 0}); p != 0 {
		t.Errorf("expected 0 on zero span, got %f", p)
	}
}
