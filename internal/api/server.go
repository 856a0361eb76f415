// Package api provides the HTTP surface of the progression engine:
// a read-only query API, an event ingestion endpoint, and a live
// snapshot feed for the presentation layer.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sage-journal/sage/internal/app/progression"
	"github.com/sage-journal/sage/internal/domain"
)

// Server is the progression HTTP API server.
type Server struct {
	engine         *progression.Engine
	metricsEnabled bool
}

// NewServer creates a new API server around an engine.
func NewServer(engine *progression.Engine) *Server {
	return &Server{engine: engine}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Event ingestion — the single mutating entry point.
	r.Post("/api/events", s.handleProcessEvent)

	// Read-only query surface.
	r.Route("/api/progression", func(r chi.Router) {
		r.Get("/level", s.handleLevel)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/streaks", s.handleStreaks)
		r.Get("/quests", s.handleQuests)
		r.Get("/challenge", s.handleChallenge)
		r.Get("/safety", s.handleSafety)
		r.Get("/summary", s.handleSummary)
		r.Get("/events", s.handleRecentEvents)
		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
		r.Get("/live", s.handleLive)
	})

	// Quest progression endpoints.
	r.Route("/api/quests", func(r chi.Router) {
		r.Post("/{id}/start", s.handleStartQuest)
		r.Post("/{id}/advance", s.handleAdvanceQuest)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleProcessEvent ingests one GamificationEvent and returns the
// resulting GamificationResult.
func (s *Server) handleProcessEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.GamificationEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}
	if event.Type == "" {
		writeError(w, http.StatusBadRequest, "event type is required")
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	result, err := s.engine.ProcessEvent(event)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	level := s.engine.Level()
	writeJSON(w, http.StatusOK, map[string]any{
		"level":        level,
		"progress_pct": progression.ProgressPct(level),
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked := s.engine.Achievements()
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked": unlocked,
		"total":    len(s.engine.Catalog().Achievements),
	})
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Streaks())
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"available": s.engine.AvailableQuests(),
		"progress":  s.engine.QuestProgress(),
	})
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, progress := s.engine.ChallengeState()
	writeJSON(w, http.StatusOK, map[string]any{
		"challenge": challenge,
		"progress":  progress,
	})
}

func (s *Server) handleSafety(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.SafetyScore())
}

// handleSummary returns the aggregate stats overview.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"level":        snap.Level,
		"progress_pct": progression.ProgressPct(snap.Level),
		"achievements": len(snap.Achievements),
		"streaks":      snap.Streaks,
		"safety":       snap.Safety,
		"counters":     snap.Counters,
	})
}

func (s *Server) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.RecentEvents())
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.PendingNotifications())
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.engine.MarkNotificationShown(id) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartQuest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	progress, err := s.engine.StartQuest(id)
	if err != nil {
		writeError(w, questErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleAdvanceQuest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Answer string `json:"answer"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	progress, result, err := s.engine.AdvanceQuest(id, body.Answer)
	if err != nil {
		writeError(w, questErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progress": progress,
		"result":   result,
	})
}

// questErrorStatus maps quest domain errors to HTTP status codes.
func questErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownQuest):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPrerequisiteNotMet),
		errors.Is(err, domain.ErrQuestCompleted),
		errors.Is(err, domain.ErrQuestAlreadyActive),
		errors.Is(err, domain.ErrQuestNotStarted),
		errors.Is(err, domain.ErrIncorrectAnswer):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleLive streams post-event snapshots as server-sent events.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	snapshots, cancel := s.engine.Subscribe()
	defer cancel()

	// Send the current state immediately.
	writeSSE(w, s.engine.Snapshot())
	flusher.Flush()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			writeSSE(w, snap)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// writeSSE writes one server-sent event frame.
func writeSSE(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	w.Write([]byte("data: "))
	w.Write(data)
	w.Write([]byte("\n\n"))
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
