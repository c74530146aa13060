package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/server/middleware"
)

// ---------------------------------------------------------------------
// Assessment Handlers
// ---------------------------------------------------------------------

// assessmentIdentity resolves the job and candidate for an assessment route.
func (s *Server) assessmentIdentity(w http.ResponseWriter, r *http.Request) (jobID, candidateID uuid.UUID, ok bool) {
	candidateID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	jobID, err = uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return uuid.Nil, uuid.Nil, false
	}

	return jobID, candidateID, true
}

func (s *Server) handleStartAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, candidateID, ok := s.assessmentIdentity(w, r)
	if !ok {
		return
	}

	session, err := s.assessments.Start(r.Context(), jobID, candidateID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":     jobID,
		"questions":  redactAnswers(session.Questions),
		"expires_at": session.ExpiresAt,
		"remaining":  int(time.Until(session.ExpiresAt).Seconds()),
	})
}

// RecordAnswerRequest selects one option for one question. Re-answering a
// question overwrites the previous choice.
type RecordAnswerRequest struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}

func (s *Server) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	jobID, candidateID, ok := s.assessmentIdentity(w, r)
	if !ok {
		return
	}

	var req RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session := s.assessments.Get(jobID, candidateID)
	if session == nil {
		s.errorResponse(w, http.StatusBadRequest, "No active assessment")
		return
	}

	if err := session.RecordAnswer(req.QuestionIndex, req.OptionIndex); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"question_index": req.QuestionIndex,
		"option_index":   req.OptionIndex,
	})
}

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, candidateID, ok := s.assessmentIdentity(w, r)
	if !ok {
		return
	}

	session := s.assessments.Get(jobID, candidateID)
	if session == nil {
		s.errorResponse(w, http.StatusBadRequest, "No active assessment")
		return
	}

	result, err := s.assessments.Finish(r.Context(), session)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleAssessmentStatus(w http.ResponseWriter, r *http.Request) {
	jobID, candidateID, ok := s.assessmentIdentity(w, r)
	if !ok {
		return
	}

	result, err := s.store.GetAssessmentResult(r.Context(), jobID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if result != nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"state":        "completed",
			"score":        result.Score,
			"completed_at": result.CompletedAt,
		})
		return
	}

	if session := s.assessments.Get(jobID, candidateID); session != nil {
		remaining := int(time.Until(session.ExpiresAt).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"state":      "in_progress",
			"expires_at": session.ExpiresAt,
			"remaining":  remaining,
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"state": "not_started"})
}
