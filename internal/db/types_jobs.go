package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

// Job represents a job posting. TestQuestions is an embedded JSONB array;
// questions are immutable once the posting is open.
type Job struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	CompanyName      string           `json:"company_name"`
	Description      string           `json:"description,omitempty"`
	Requirements     string           `json:"requirements"`
	ExperienceLevel  string           `json:"experience_level,omitempty"`
	Location         string           `json:"location,omitempty"`
	JobType          string           `json:"job_type,omitempty"`
	SalaryRange      string           `json:"salary_range,omitempty"`
	Status           string           `json:"status"`
	TestQuestions    []types.Question `json:"test_questions,omitempty"`
	ApplicationCount int              `json:"application_count"`
	CreatedBy        uuid.UUID        `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// IsOpen reports whether the posting still accepts applications.
func (j *Job) IsOpen() bool {
	return j.Status == types.JobStatusOpen
}

// MatchRequirements returns the job-side input for match scoring.
func (j *Job) MatchRequirements() types.JobRequirements {
	return types.JobRequirements{
		Title:           j.Title,
		Requirements:    j.Requirements,
		ExperienceLevel: j.ExperienceLevel,
	}
}
