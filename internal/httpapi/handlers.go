package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/viva/internal/algorithm"
	"github.com/alexanderramin/viva/internal/domain"
	"github.com/alexanderramin/viva/internal/orchestrator"
	"github.com/alexanderramin/viva/internal/repository"
)

type runRequest struct {
	Tag        string           `json:"tag"`
	Parameters algorithm.Params `json:"parameters"`
	UserID     string           `json:"user_id"`
}

// handleRunAlgorithm executes the requested strategy synchronously and
// returns the completed run record.
func (s *Server) handleRunAlgorithm(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Tag == "" {
		s.respondError(w, http.StatusBadRequest, "tag is required")
		return
	}

	record, err := s.orch.RunAlgorithm(r.Context(), req.Tag, req.Parameters, req.UserID)
	if err != nil {
		if errors.Is(err, orchestrator.ErrUnknownAlgorithm) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		status := http.StatusInternalServerError
		if errors.Is(err, orchestrator.ErrEmptySnapshot) {
			status = http.StatusConflict
		}
		payload := map[string]any{"error": err.Error()}
		if record != nil {
			payload["run"] = runPayload(record)
		}
		s.respond(w, status, payload)
		return
	}
	s.respond(w, http.StatusOK, runPayload(record))
}

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	descriptors := algorithm.Descriptors()
	list := make([]map[string]any, len(descriptors))
	for i, d := range descriptors {
		list[i] = map[string]any{
			"tag":         d.Tag,
			"category":    string(d.Category),
			"description": d.Description,
			"parameters":  d.Params,
		}
	}
	s.respond(w, http.StatusOK, map[string]any{"algorithms": list})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	record, err := s.runs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respond(w, http.StatusOK, runPayload(record))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.runs.ListRecent(r.Context(), limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	list := make([]map[string]any, len(records))
	for i, record := range records {
		list[i] = runSummary(record)
	}
	s.respond(w, http.StatusOK, map[string]any{"runs": list})
}

func (s *Server) handleListSchedule(w http.ResponseWriter, r *http.Request) {
	var makeup *bool
	if v := r.URL.Query().Get("makeup"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "makeup must be a boolean")
			return
		}
		makeup = &b
	}

	rows, err := s.schedule.List(r.Context(), makeup)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	list := make([]map[string]any, len(rows))
	for i, row := range rows {
		list[i] = map[string]any{
			"id":             row.ID,
			"project_id":     row.ProjectID,
			"classroom_id":   row.ClassroomID,
			"timeslot_id":    row.TimeslotID,
			"is_makeup":      row.IsMakeup,
			"instructor_ids": row.InstructorIDs,
		}
	}
	s.respond(w, http.StatusOK, map[string]any{"schedule": list})
}

func runPayload(record *domain.RunRecord) map[string]any {
	m := runSummary(record)
	m["parameters"] = record.Parameters
	m["data"] = record.Data
	m["result"] = record.Result
	m["user_id"] = record.UserID
	return m
}

// runSummary is the compact listing shape: identity and outcome without
// the full result payload.
func runSummary(record *domain.RunRecord) map[string]any {
	m := map[string]any{
		"id":                record.ID,
		"algorithm_tag":     record.AlgorithmTag,
		"status":            string(record.Status),
		"execution_seconds": record.ExecutionSeconds,
		"started_at":        record.StartedAt.Format(time.RFC3339),
	}
	if record.CompletedAt != nil {
		m["completed_at"] = record.CompletedAt.Format(time.RFC3339)
	}
	if record.Error != "" {
		m["error"] = record.Error
	}
	return m
}
