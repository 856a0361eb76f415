package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sage-journal/sage/internal/api"
	"github.com/sage-journal/sage/internal/app/progression"
	"github.com/sage-journal/sage/internal/catalog"
	"github.com/sage-journal/sage/internal/infra/kvstore"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	engine := progression.New(store, catalog.Default())
	srv := httptest.NewServer(api.NewServer(engine).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestProcessEvent_RoundTrip(t *testing.T) {
	srv := testServer(t)

	body := `{"type":"experience_created","timestamp":"2026-08-24T12:00:00Z"}`
	resp, err := http.Post(srv.URL+"/api/events", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		XPAwarded       int64 `json:"xp_awarded"`
		NewAchievements []struct {
			ID string `json:"id"`
		} `json:"new_achievements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Base 25 + "First Entry" achievement 50.
	if result.XPAwarded != 75 {
		t.Errorf("expected 75 XP, got %d", result.XPAwarded)
	}
	if len(result.NewAchievements) != 1 || result.NewAchievements[0].ID != "first_entry" {
		t.Errorf("expected first_entry unlock, got %v", result.NewAchievements)
	}
}

func TestProcessEvent_MissingType(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/events", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLevelEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/progression/level")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Level struct {
			CurrentLevel int `json:"current_level"`
		} `json:"level"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Level.CurrentLevel != 1 {
		t.Errorf("expected fresh level 1, got %d", payload.Level.CurrentLevel)
	}
}

func TestQuestEndpoints(t *testing.T) {
	srv := testServer(t)

	// Prerequisite not met → 409.
	resp, err := http.Post(srv.URL+"/api/quests/integration_reflection/start", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for unmet prerequisites, got %d", resp.StatusCode)
	}

	// Unknown quest → 404.
	resp, err = http.Post(srv.URL+"/api/quests/nope/start", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown quest, got %d", resp.StatusCode)
	}

	// Valid start → 200.
	resp, err = http.Post(srv.URL+"/api/quests/basics_dosing/start", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for valid start, got %d", resp.StatusCode)
	}
}
