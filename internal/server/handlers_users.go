package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/server/middleware"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ---------------------------------------------------------------------
// Profile and User Administration Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// maxResumeTextSize bounds the plain-text body accepted for parsing.
const maxResumeTextSize = 1 << 20

// handleParseResume extracts a structured profile from plain resume text and
// returns it without persisting anything. The client reviews the extraction
// before applying it to the profile.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	text, err := io.ReadAll(io.LimitReader(r.Body, maxResumeTextSize))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(text) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Resume text is required")
		return
	}

	parsed, err := s.resumeParser.Parse(r.Context(), string(text))
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Extraction failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, parsed)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"users": users, "count": len(users)})
}

// SetAdminRequest toggles the admin flag on an account.
type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

func (s *Server) handleSetAdmin(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req SetAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.SetAdmin(r.Context(), userID, req.IsAdmin); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"id": userID, "is_admin": req.IsAdmin})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := s.store.DeleteUser(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
