package shortlist

import (
	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/db"
)

// Failure records one application the batch could not fully process.
type Failure struct {
	ApplicationID  uuid.UUID `json:"application_id"`
	CandidateEmail string    `json:"candidate_email"`
	Stage          string    `json:"stage"` // score, persist, status or notify
	Reason         string    `json:"reason"`
}

// Report summarizes one shortlisting batch.
type Report struct {
	JobID       uuid.UUID `json:"job_id"`
	Total       int       `json:"total"`       // applications examined
	Scored      int       `json:"scored"`      // new match scores persisted
	Shortlisted int       `json:"shortlisted"` // applications at or above the threshold
	Notified    int       `json:"notified"`    // shortlist emails delivered
	Failures    []Failure `json:"failures,omitempty"`
}

func (r *Report) addFailure(app *db.ApplicationDetail, stage string, err error) {
	r.Failures = append(r.Failures, Failure{
		ApplicationID:  app.ID,
		CandidateEmail: app.CandidateEmail,
		Stage:          stage,
		Reason:         err.Error(),
	})
}

// Clean reports whether the batch completed with no per-item failures.
func (r *Report) Clean() bool {
	return len(r.Failures) == 0
}
