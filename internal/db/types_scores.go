package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

// MatchScore is a persisted compatibility estimate for one (job, candidate)
// pair. At most one row exists per pair; re-scoring upserts.
type MatchScore struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	CandidateID     uuid.UUID `json:"candidate_id"`
	OverallScore    int       `json:"overall_score"`
	SkillsMatch     int       `json:"skills_match"`
	ExperienceMatch int       `json:"experience_match"`
	EducationMatch  int       `json:"education_match"`
	Strengths       []string  `json:"strengths"`
	Gaps            []string  `json:"gaps"`
	Recommendation  string    `json:"recommendation,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Result converts the stored row back into the scoring result shape.
func (m *MatchScore) Result() *types.MatchScoreResult {
	return &types.MatchScoreResult{
		OverallScore:    m.OverallScore,
		SkillsMatch:     m.SkillsMatch,
		ExperienceMatch: m.ExperienceMatch,
		EducationMatch:  m.EducationMatch,
		Analysis: types.MatchAnalysis{
			Strengths:      m.Strengths,
			Gaps:           m.Gaps,
			Recommendation: m.Recommendation,
		},
	}
}

// AssessmentResult is one candidate's completed timed run through a job's
// screening questions. At most one row exists per (job, candidate) pair.
type AssessmentResult struct {
	ID          uuid.UUID   `json:"id"`
	JobID       uuid.UUID   `json:"job_id"`
	CandidateID uuid.UUID   `json:"candidate_id"`
	Score       int         `json:"score"`
	Answers     map[int]int `json:"answers"`
	CompletedAt time.Time   `json:"completed_at"`
}
