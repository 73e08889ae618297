// Package httpapi exposes the scheduling engine over JSON HTTP: algorithm
// execution, run retrieval, schedule listing, and the websocket progress
// stream.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/viva/internal/orchestrator"
	"github.com/alexanderramin/viva/internal/progress"
	"github.com/alexanderramin/viva/internal/repository"
)

// Server routes API requests to the orchestrator and the stores.
type Server struct {
	orch     *orchestrator.Orchestrator
	runs     repository.RunRepo
	schedule repository.ScheduleRepo
	hub      *progress.Hub
	log      *slog.Logger
	mux      *http.ServeMux
}

func NewServer(orch *orchestrator.Orchestrator, runs repository.RunRepo, schedule repository.ScheduleRepo, hub *progress.Hub, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{orch: orch, runs: runs, schedule: schedule, hub: hub, log: log, mux: http.NewServeMux()}

	s.mux.HandleFunc("POST /api/algorithms/run", s.handleRunAlgorithm)
	s.mux.HandleFunc("GET /api/algorithms", s.handleListAlgorithms)
	s.mux.HandleFunc("GET /api/runs", s.handleListRuns)
	s.mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)
	s.mux.HandleFunc("GET /api/schedule", s.handleListSchedule)
	if hub != nil {
		s.mux.Handle("GET /ws", hub)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Warn("response encode failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, map[string]any{"error": message})
}
