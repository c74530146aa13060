// Package server provides the HTTP REST API for the hiring platform.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/assessment"
	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/storage"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrJobClosed indicates the job posting no longer accepts applications
type ErrJobClosed struct {
	JobID uuid.UUID
}

func (e *ErrJobClosed) Error() string {
	return fmt.Sprintf("job is closed: %s", e.JobID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var alreadyApplied *db.ErrAlreadyApplied
	var duplicateEmail *db.ErrDuplicateEmail
	var alreadyCompleted *assessment.ErrAlreadyCompleted
	var noQuestions *assessment.ErrNoQuestions
	var notInProgress *assessment.ErrNotInProgress
	var tooLarge *storage.ErrTooLarge

	switch {
	case errors.As(err, &alreadyApplied), errors.As(err, &duplicateEmail), errors.As(err, &alreadyCompleted):
		return http.StatusConflict
	case errors.As(err, &noQuestions), errors.As(err, &notInProgress):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrJobClosed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
