package db

import (
	"context"
	"fmt"
)

// Analytics is the back-office dashboard summary.
type Analytics struct {
	JobsByStatus         map[string]int `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	AssessmentsCompleted int            `json:"assessments_completed"`
	AverageMatchScore    float64        `json:"average_match_score"`
	TotalUsers           int            `json:"total_users"`
}

// GetAnalytics aggregates counters for the admin dashboard.
func (db *DB) GetAnalytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{
		JobsByStatus:         make(map[string]int),
		ApplicationsByStatus: make(map[string]int),
	}

	rows, err := db.pool.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan job count: %w", err)
		}
		a.JobsByStatus[status] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.pool.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan application count: %w", err)
		}
		a.ApplicationsByStatus[status] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM assessment_results`).Scan(&a.AssessmentsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count assessments: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(overall_score), 0) FROM match_scores`).Scan(&a.AverageMatchScore)
	if err != nil {
		return nil, fmt.Errorf("failed to average match scores: %w", err)
	}

	err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&a.TotalUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return a, nil
}
