package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/server/middleware"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ---------------------------------------------------------------------
// Job Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.CreateJob(r.Context(), userID, &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	// Correct answers never leave the server for non-admin callers.
	if !middleware.IsAdmin(r) {
		job.TestQuestions = redactAnswers(job.TestQuestions)
	}

	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != types.JobStatusOpen && status != types.JobStatusClosed {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), status)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if !middleware.IsAdmin(r) {
		for _, job := range jobs {
			job.TestQuestions = redactAnswers(job.TestQuestions)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	if err := s.store.UpdateJob(r.Context(), jobID, &req); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": jobID.String()})
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := s.store.DeleteJob(r.Context(), jobID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DescribeJobRequest asks the model to draft a posting description.
type DescribeJobRequest struct {
	Title        string `json:"title"`
	Requirements string `json:"requirements"`
}

func (s *Server) handleDescribeJob(w http.ResponseWriter, r *http.Request) {
	var req DescribeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		s.errorResponse(w, http.StatusBadRequest, "Title is required")
		return
	}

	description, err := s.describer.Describe(r.Context(), req.Title, req.Requirements)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Generation failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"description": description})
}

// redactAnswers strips the correct answer index from each question.
func redactAnswers(questions []types.Question) []types.Question {
	if len(questions) == 0 {
		return questions
	}
	redacted := make([]types.Question, len(questions))
	for i, q := range questions {
		q.CorrectAnswer = -1
		redacted[i] = q
	}
	return redacted
}
