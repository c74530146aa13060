package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/mailer"
	"github.com/ramanhiring/hiring-agent/internal/server/middleware"
	"github.com/ramanhiring/hiring-agent/internal/storage"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

// handleApply accepts a multipart form with a required "resume" file part and
// an optional "cover_letter" field.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

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
	if !job.IsOpen() {
		jobClosed := &ErrJobClosed{JobID: jobID}
		s.errorResponse(w, HTTPStatus(jobClosed), jobClosed.Error())
		return
	}

	if err := r.ParseMultipartForm(storage.MaxResumeSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Resume file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !storage.AllowedExtension(ext) {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported resume format: "+ext)
		return
	}

	resumePath := fmt.Sprintf("%s_%s%s", jobID, candidateID, ext)
	savedPath, err := s.resumes.Save(resumePath, file)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to store resume: "+err.Error())
		return
	}

	coverLetter := r.FormValue("cover_letter")

	id, err := s.store.CreateApplication(r.Context(), jobID, candidateID, savedPath, coverLetter)
	if err != nil {
		var alreadyApplied *db.ErrAlreadyApplied
		if errors.As(err, &alreadyApplied) {
			s.errorResponse(w, http.StatusConflict, alreadyApplied.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.store.IncrementApplicationCount(r.Context(), jobID); err != nil {
		log.Printf("Failed to bump application count for job %s: %v", jobID, err)
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"id":     id.String(),
		"status": types.StatusPending,
	})
}

func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.store.ListApplicationsByCandidate(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

// handleListJobApplications returns the joined review rows for one job,
// including candidate profiles and any existing match scores.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	details, err := s.store.ListApplicationDetails(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": details, "count": len(details)})
}

// getOwnedApplication loads an application and enforces that the caller is
// either its candidate or an admin.
func (s *Server) getOwnedApplication(w http.ResponseWriter, r *http.Request) *db.Application {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return nil
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return nil
	}

	if !middleware.IsAdmin(r) {
		userID, err := middleware.GetUserID(r)
		if err != nil || app.CandidateID != userID {
			s.errorResponse(w, http.StatusForbidden, "Forbidden")
			return nil
		}
	}

	return app
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app := s.getOwnedApplication(w, r)
	if app == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	app := s.getOwnedApplication(w, r)
	if app == nil {
		return
	}
	if app.ResumePath == "" {
		s.errorResponse(w, http.StatusNotFound, "No resume on file")
		return
	}

	f, err := s.resumes.Open(app.ResumePath)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Resume file not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(app.ResumePath)))
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("Error streaming resume %s: %v", app.ResumePath, err)
	}
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	if err := s.store.UpdateApplication(r.Context(), id, &req); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id.String()})
}

// handleSendFeedback emails stored or inline feedback to the candidate and
// marks the application accordingly.
func (s *Server) handleSendFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.SendFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := s.store.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	candidate, err := s.store.GetUser(r.Context(), app.CandidateID)
	if err != nil || candidate == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load candidate")
		return
	}

	job, err := s.store.GetJob(r.Context(), app.JobID)
	if err != nil || job == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load job")
		return
	}

	score := 0
	if app.Score != nil {
		score = *app.Score
	}
	params := mailer.FeedbackParams(candidate.Email, job.Title, req.Feedback, score)
	if err := s.mailer.Send(r.Context(), s.emailConfig.FeedbackTemplateID, params); err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to send feedback: "+err.Error())
		return
	}

	if err := s.store.MarkFeedbackSent(r.Context(), id, req.Feedback); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Feedback sent"})
}
