package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

// UpsertMatchScore persists a match score keyed by (job_id, candidate_id).
// Re-scoring the same pair replaces the previous row; duplicates are
// impossible by construction.
func (db *DB) UpsertMatchScore(ctx context.Context, jobID, candidateID uuid.UUID, result *types.MatchScoreResult) (uuid.UUID, error) {
	strengths, err := json.Marshal(result.Analysis.Strengths)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal strengths: %w", err)
	}
	gaps, err := json.Marshal(result.Analysis.Gaps)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal gaps: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO match_scores (job_id, candidate_id, overall_score, skills_match,
			experience_match, education_match, strengths, gaps, recommendation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			overall_score = $3, skills_match = $4, experience_match = $5,
			education_match = $6, strengths = $7, gaps = $8, recommendation = $9,
			created_at = NOW()
		 RETURNING id`,
		jobID, candidateID, result.OverallScore, result.SkillsMatch,
		result.ExperienceMatch, result.EducationMatch, strengths, gaps,
		result.Analysis.Recommendation,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert match score: %w", err)
	}
	return id, nil
}

// GetMatchScore retrieves the match score for a (job, candidate) pair.
// Returns (nil, nil) when the pair has not been scored.
func (db *DB) GetMatchScore(ctx context.Context, jobID, candidateID uuid.UUID) (*MatchScore, error) {
	var m MatchScore
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, overall_score, skills_match, experience_match,
			education_match, strengths, gaps, recommendation, created_at
		 FROM match_scores WHERE job_id = $1 AND candidate_id = $2`,
		jobID, candidateID,
	).Scan(&m.ID, &m.JobID, &m.CandidateID, &m.OverallScore, &m.SkillsMatch,
		&m.ExperienceMatch, &m.EducationMatch, &m.Strengths, &m.Gaps,
		&m.Recommendation, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match score: %w", err)
	}
	return &m, nil
}
