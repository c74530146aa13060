package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ErrAlreadyApplied indicates the candidate has already applied to the job.
type ErrAlreadyApplied struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
}

func (e *ErrAlreadyApplied) Error() string {
	return fmt.Sprintf("candidate %s has already applied to job %s", e.CandidateID, e.JobID)
}

const applicationColumns = `id, job_id, candidate_id, status, resume_path, cover_letter,
	score, feedback, feedback_sent, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.ResumePath,
		&a.CoverLetter, &a.Score, &a.Feedback, &a.FeedbackSent, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new application in status pending.
// Returns ErrAlreadyApplied when the (job, candidate) pair already exists.
func (db *DB) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumePath, coverLetter string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, status, resume_path, cover_letter)
		 VALUES ($1, $2, 'pending', $3, $4)
		 RETURNING id`,
		jobID, candidateID, resumePath, coverLetter,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, &ErrAlreadyApplied{JobID: jobID, CandidateID: candidateID}
		}
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID. Returns (nil, nil) when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplicationsByCandidate returns a candidate's applications, newest first.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ListApplicationsByJob returns a job's applications, newest first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]*Application, error) {
	var apps []*Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ListApplicationDetails returns every application for a job joined with the
// candidate profile, job fields and any existing match score. This is the
// working set for the shortlisting orchestrator.
func (db *DB) ListApplicationDetails(ctx context.Context, jobID uuid.UUID) ([]*ApplicationDetail, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.resume_path, a.cover_letter,
			a.score, a.feedback, a.feedback_sent, a.created_at, a.updated_at,
			u.name, u.email, u.skills, u.experience_years, u.current_position, u.education,
			j.title, j.company_name, j.requirements, j.experience_level,
			m.id, m.overall_score, m.skills_match, m.experience_match, m.education_match,
			m.strengths, m.gaps, m.recommendation, m.created_at
		 FROM applications a
		 JOIN users u ON u.id = a.candidate_id
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN match_scores m ON m.job_id = a.job_id AND m.candidate_id = a.candidate_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list application details: %w", err)
	}
	defer rows.Close()

	var details []*ApplicationDetail
	for rows.Next() {
		var d ApplicationDetail
		var scoreID *uuid.UUID
		var overall, skillsMatch, expMatch, eduMatch *int
		var strengths, gaps []string
		var recommendation *string
		var scoredAt *time.Time

		err := rows.Scan(&d.ID, &d.JobID, &d.CandidateID, &d.Status, &d.ResumePath,
			&d.CoverLetter, &d.Score, &d.Feedback, &d.FeedbackSent, &d.CreatedAt, &d.UpdatedAt,
			&d.CandidateName, &d.CandidateEmail, &d.Candidate.Skills, &d.Candidate.ExperienceYears,
			&d.Candidate.CurrentPosition, &d.Candidate.Education,
			&d.JobTitle, &d.CompanyName, &d.Job.Requirements, &d.Job.ExperienceLevel,
			&scoreID, &overall, &skillsMatch, &expMatch, &eduMatch,
			&strengths, &gaps, &recommendation, &scoredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application detail: %w", err)
		}

		d.Job.Title = d.JobTitle
		if scoreID != nil {
			d.MatchScore = &MatchScore{
				ID:              *scoreID,
				JobID:           d.JobID,
				CandidateID:     d.CandidateID,
				OverallScore:    *overall,
				SkillsMatch:     *skillsMatch,
				ExperienceMatch: *expMatch,
				EducationMatch:  *eduMatch,
				Strengths:       strengths,
				Gaps:            gaps,
				CreatedAt:       *scoredAt,
			}
			if recommendation != nil {
				d.MatchScore.Recommendation = *recommendation
			}
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// UpdateApplication applies an admin update (status, star score, feedback).
// Nil pointers leave the stored value untouched.
func (db *DB) UpdateApplication(ctx context.Context, id uuid.UUID, req *types.UpdateApplicationRequest) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET
			status = COALESCE($1, status),
			score = COALESCE($2, score),
			feedback = COALESCE($3, feedback),
			updated_at = NOW()
		 WHERE id = $4`,
		req.Status, req.Score, req.Feedback, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// UpdateApplicationStatus sets only the status. Used by the shortlisting
// orchestrator for the programmatic pending -> shortlisted transition.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// MarkFeedbackSent records that feedback was emailed to the candidate.
func (db *DB) MarkFeedbackSent(ctx context.Context, id uuid.UUID, feedback string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET feedback = $1, feedback_sent = TRUE, updated_at = NOW()
		 WHERE id = $2`,
		feedback, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark feedback sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}
