package types

import (
	"github.com/go-playground/validator/v10"
)

// Application status values. Transitions are admin-triggered and unconstrained;
// the only programmatic transition is pending -> shortlisted during bulk
// shortlisting.
const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// ValidStatus reports whether s is a known application status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// ApplyRequest represents a candidate applying to a job. The resume file itself
// travels as a multipart upload; ResumePath is filled in by the server after the
// file lands in storage.
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter,omitempty"`
	ResumePath  string `json:"-"`
}

// UpdateApplicationRequest represents an admin update to an application.
type UpdateApplicationRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending reviewed shortlisted rejected hired"`
	Score    *int    `json:"score,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback *string `json:"feedback,omitempty"`
}

// SendFeedbackRequest represents an admin request to email feedback to a candidate.
type SendFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1"`
}

// Validate validates the UpdateApplicationRequest using the validator.
func (r *UpdateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SendFeedbackRequest using the validator.
func (r *SendFeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
