package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

// Application represents one candidate's application to one job. Score is the
// optional 1-5 admin star rating, distinct from the model match score.
type Application struct {
	ID           uuid.UUID `json:"id"`
	JobID        uuid.UUID `json:"job_id"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	Status       string    `json:"status"`
	ResumePath   string    `json:"resume_path,omitempty"`
	CoverLetter  string    `json:"cover_letter,omitempty"`
	Score        *int      `json:"score,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	FeedbackSent bool      `json:"feedback_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApplicationDetail is the joined row the shortlisting orchestrator works on:
// the application plus its candidate profile, job fields and any existing
// match score (nil when the candidate has not been scored yet).
type ApplicationDetail struct {
	Application
	CandidateName  string                 `json:"candidate_name"`
	CandidateEmail string                 `json:"candidate_email"`
	Candidate      types.CandidateProfile `json:"candidate"`
	JobTitle       string                 `json:"job_title"`
	CompanyName    string                 `json:"company_name"`
	Job            types.JobRequirements  `json:"job"`
	MatchScore     *MatchScore            `json:"match_score,omitempty"`
}
