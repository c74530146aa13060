package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Job status values. A closed job no longer accepts applications.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Question is one multiple-choice screening question embedded in a job posting.
// Questions are immutable once the posting is published.
type Question struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer int      `json:"correct_answer" validate:"min=0,max=3"`
}

// CreateJobRequest represents an admin request to create a job posting.
type CreateJobRequest struct {
	Title           string     `json:"title" validate:"required,min=1"`
	CompanyName     string     `json:"company_name" validate:"required,min=1"`
	Description     string     `json:"description,omitempty"`
	Requirements    string     `json:"requirements" validate:"required"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	Location        string     `json:"location,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	SalaryRange     string     `json:"salary_range,omitempty"`
	TestQuestions   []Question `json:"test_questions,omitempty" validate:"omitempty,dive"`
}

// UpdateJobRequest represents an admin request to update a job posting.
// Nil pointers leave the stored value untouched.
type UpdateJobRequest struct {
	Title           *string    `json:"title,omitempty"`
	CompanyName     *string    `json:"company_name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Requirements    *string    `json:"requirements,omitempty"`
	ExperienceLevel *string    `json:"experience_level,omitempty"`
	Location        *string    `json:"location,omitempty"`
	JobType         *string    `json:"job_type,omitempty"`
	SalaryRange     *string    `json:"salary_range,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
	TestQuestions   []Question `json:"test_questions,omitempty" validate:"omitempty,dive"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateQuestions(r.TestQuestions)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateQuestions(r.TestQuestions)
}

// validateQuestions checks that every correct-answer index points at one of the
// question's own options. The struct tags only bound the index to [0,3].
func validateQuestions(questions []Question) error {
	for i, q := range questions {
		if q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correct_answer %d out of range for %d options",
				i, q.CorrectAnswer, len(q.Options))
		}
	}
	return nil
}
