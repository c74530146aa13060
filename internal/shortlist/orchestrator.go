// Package shortlist implements bulk candidate promotion: every application
// for a job gets a match score, and candidates at or above the threshold are
// moved to shortlisted and notified by email.
package shortlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/mailer"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// Threshold is the minimum overall score for shortlisting.
const Threshold = 75

// maxConcurrentScoring bounds the parallel model calls during a batch.
const maxConcurrentScoring = 4

// Store is the persistence the orchestrator depends on.
type Store interface {
	ListApplicationDetails(ctx context.Context, jobID uuid.UUID) ([]*db.ApplicationDetail, error)
	UpsertMatchScore(ctx context.Context, jobID, candidateID uuid.UUID, result *types.MatchScoreResult) (uuid.UUID, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Scorer computes one candidate/job compatibility score.
type Scorer interface {
	Score(ctx context.Context, job types.JobRequirements, candidate types.CandidateProfile) (*types.MatchScoreResult, error)
}

// Orchestrator runs the shortlisting batch for one job at a time.
type Orchestrator struct {
	store             Store
	scorer            Scorer
	mailer            mailer.Mailer
	shortlistTemplate string
	contact           mailer.CompanyContact
}

// New creates an orchestrator.
func New(store Store, scorer Scorer, m mailer.Mailer, shortlistTemplate string, contact mailer.CompanyContact) *Orchestrator {
	return &Orchestrator{
		store:             store,
		scorer:            scorer,
		mailer:            m,
		shortlistTemplate: shortlistTemplate,
		contact:           contact,
	}
}

// ShortlistAll ensures every application for the job has a match score, then
// promotes and notifies qualifying candidates. Per-item failures (scoring,
// persistence, email) land in the report and never abort the rest of the
// batch; only the initial fetch can fail the whole operation.
func (o *Orchestrator) ShortlistAll(ctx context.Context, jobID uuid.UUID) (*Report, error) {
	apps, err := o.store.ListApplicationDetails(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	report := &Report{JobID: jobID, Total: len(apps)}
	if len(apps) == 0 {
		return report, nil
	}

	o.scoreUnscored(ctx, apps, report)

	for _, app := range apps {
		if app.MatchScore == nil || app.MatchScore.OverallScore < Threshold {
			continue
		}
		report.Shortlisted++

		// Already-shortlisted applications are never re-notified.
		if app.Status == types.StatusShortlisted {
			continue
		}

		if err := o.store.UpdateApplicationStatus(ctx, app.ID, types.StatusShortlisted); err != nil {
			report.addFailure(app, "status", err)
			continue
		}

		params := mailer.ShortlistParams(app.CandidateEmail, app.CandidateName,
			app.JobTitle, app.CompanyName, app.MatchScore.OverallScore, o.contact)
		if err := o.mailer.Send(ctx, o.shortlistTemplate, params); err != nil {
			report.addFailure(app, "notify", err)
			continue
		}
		report.Notified++
	}

	return report, nil
}

// scoreUnscored fills in missing match scores concurrently. Successful scores
// are persisted by (job, candidate) upsert; failed items are recorded and
// excluded from promotion.
func (o *Orchestrator) scoreUnscored(ctx context.Context, apps []*db.ApplicationDetail, report *Report) {
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScoring)

	for _, app := range apps {
		if app.MatchScore != nil {
			continue
		}

		g.Go(func() error {
			result, err := o.scorer.Score(gctx, app.Job, app.Candidate)
			if err != nil {
				mu.Lock()
				report.addFailure(app, "score", err)
				mu.Unlock()
				return nil // per-item failure, keep the batch going
			}

			id, err := o.store.UpsertMatchScore(gctx, app.JobID, app.CandidateID, result)
			if err != nil {
				mu.Lock()
				report.addFailure(app, "persist", err)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			app.MatchScore = &db.MatchScore{
				ID:              id,
				JobID:           app.JobID,
				CandidateID:     app.CandidateID,
				OverallScore:    result.OverallScore,
				SkillsMatch:     result.SkillsMatch,
				ExperienceMatch: result.ExperienceMatch,
				EducationMatch:  result.EducationMatch,
				Strengths:       result.Analysis.Strengths,
				Gaps:            result.Analysis.Gaps,
				Recommendation:  result.Analysis.Recommendation,
			}
			report.Scored++
			mu.Unlock()
			return nil
		})
	}

	// Goroutines never return errors; Wait is for completion only.
	_ = g.Wait()
}
