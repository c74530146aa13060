package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

const jobColumns = `id, title, company_name, description, requirements, experience_level,
	location, job_type, salary_range, status, test_questions, application_count,
	created_by, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.CompanyName, &j.Description, &j.Requirements,
		&j.ExperienceLevel, &j.Location, &j.JobType, &j.SalaryRange, &j.Status,
		&j.TestQuestions, &j.ApplicationCount, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a new job posting and returns its ID.
func (db *DB) CreateJob(ctx context.Context, createdBy uuid.UUID, req *types.CreateJobRequest) (uuid.UUID, error) {
	questions, err := json.Marshal(req.TestQuestions)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal test questions: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company_name, description, requirements, experience_level,
			location, job_type, salary_range, status, test_questions, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'open', $9, $10)
		 RETURNING id`,
		req.Title, req.CompanyName, req.Description, req.Requirements, req.ExperienceLevel,
		req.Location, req.JobType, req.SalaryRange, questions, createdBy,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job by ID. Returns (nil, nil) when not found.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns jobs ordered by creation time, newest first. Pass an empty
// status to list all.
func (db *DB) ListJobs(ctx context.Context, status string) ([]*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateJob applies a partial update to a job posting. Nil pointers leave the
// stored value untouched.
func (db *DB) UpdateJob(ctx context.Context, jobID uuid.UUID, req *types.UpdateJobRequest) error {
	var questionsParam any
	if req.TestQuestions != nil {
		b, err := json.Marshal(req.TestQuestions)
		if err != nil {
			return fmt.Errorf("failed to marshal test questions: %w", err)
		}
		questionsParam = b
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET
			title = COALESCE($1, title),
			company_name = COALESCE($2, company_name),
			description = COALESCE($3, description),
			requirements = COALESCE($4, requirements),
			experience_level = COALESCE($5, experience_level),
			location = COALESCE($6, location),
			job_type = COALESCE($7, job_type),
			salary_range = COALESCE($8, salary_range),
			status = COALESCE($9, status),
			test_questions = COALESCE($10::jsonb, test_questions),
			updated_at = NOW()
		 WHERE id = $11`,
		req.Title, req.CompanyName, req.Description, req.Requirements, req.ExperienceLevel,
		req.Location, req.JobType, req.SalaryRange, req.Status, questionsParam, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// DeleteJob removes a job posting and cascades to its applications.
func (db *DB) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// IncrementApplicationCount bumps the denormalized application counter.
func (db *DB) IncrementApplicationCount(ctx context.Context, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET application_count = application_count + 1, updated_at = NOW()
		 WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to increment application count: %w", err)
	}
	return nil
}
