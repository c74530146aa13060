package server

import (
	"net/http"

	"github.com/google/uuid"
)

// handleShortlist runs the scoring and promotion batch for one job and
// returns the resulting report, including any per-candidate failures.
func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
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

	report, err := s.shortlister.ShortlistAll(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Shortlisting failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleAnalytics returns aggregate counters for the admin dashboard.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.store.GetAnalytics(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analytics)
}
