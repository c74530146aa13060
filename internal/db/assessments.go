package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertAssessmentResult persists a completed assessment keyed by
// (job_id, candidate_id). A retried submit replaces the previous row rather
// than inserting a duplicate.
func (db *DB) UpsertAssessmentResult(ctx context.Context, result *AssessmentResult) (uuid.UUID, error) {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO assessment_results (job_id, candidate_id, score, answers, completed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			score = $3, answers = $4, completed_at = $5
		 RETURNING id`,
		result.JobID, result.CandidateID, result.Score, answers, result.CompletedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert assessment result: %w", err)
	}
	return id, nil
}

// GetAssessmentResult retrieves the assessment result for a (job, candidate)
// pair. Returns (nil, nil) when the candidate has not completed one.
func (db *DB) GetAssessmentResult(ctx context.Context, jobID, candidateID uuid.UUID) (*AssessmentResult, error) {
	var r AssessmentResult
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, score, answers, completed_at
		 FROM assessment_results WHERE job_id = $1 AND candidate_id = $2`,
		jobID, candidateID,
	).Scan(&r.ID, &r.JobID, &r.CandidateID, &r.Score, &r.Answers, &r.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment result: %w", err)
	}
	return &r, nil
}
