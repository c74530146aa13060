// Package ai implements the model-backed operations of the hiring platform:
// candidate/job match scoring, job description generation and resume parsing.
// Every operation degrades to a safe default when no inference credential is
// configured, and never invents a zero score for a failed call.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ramanhiring/hiring-agent/internal/llm"
	"github.com/ramanhiring/hiring-agent/internal/prompts"
	"github.com/ramanhiring/hiring-agent/internal/schemas"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ScoringError indicates the external scoring call failed or returned an
// unusable response. Callers must treat it as "no score produced", never as a
// zero score.
type ScoringError struct {
	Stage string // "generate", "validate" or "decode"
	Cause error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("match scoring failed during %s: %v", e.Stage, e.Cause)
}

func (e *ScoringError) Unwrap() error {
	return e.Cause
}

// Scorer computes candidate/job compatibility scores via the inference client.
// A Scorer with a nil client runs in degraded mode and returns all-zero scores.
type Scorer struct {
	client llm.Client
}

// NewScorer creates a scorer. Pass a nil client to get degraded-mode behavior
// when no API credential is configured.
func NewScorer(client llm.Client) *Scorer {
	return &Scorer{client: client}
}

// Degraded reports whether the scorer is running without an inference client.
func (s *Scorer) Degraded() bool {
	return s.client == nil
}

// Score obtains a structured compatibility score for one candidate against one
// job. Missing input fields interpolate as empty strings; they degrade prompt
// quality but do not fail the call. Repeated calls for the same pair are not
// deduplicated here.
func (s *Scorer) Score(ctx context.Context, job types.JobRequirements, candidate types.CandidateProfile) (*types.MatchScoreResult, error) {
	if s.client == nil {
		return types.ZeroMatchScore(), nil
	}

	prompt := prompts.Format(prompts.MustGet("scoring.json", "match_score"), map[string]string{
		"Title":           job.Title,
		"Requirements":    job.Requirements,
		"Experience":      job.ExperienceLevel,
		"Skills":          strings.Join(candidate.Skills, ", "),
		"ExperienceYears": strconv.Itoa(candidate.ExperienceYears),
		"CurrentPosition": candidate.CurrentPosition,
		"Education":       candidate.Education,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TaskScoring)
	if err != nil {
		return nil, &ScoringError{Stage: "generate", Cause: err}
	}

	if err := schemas.Validate("match_score.schema.json", raw); err != nil {
		return nil, &ScoringError{Stage: "validate", Cause: err}
	}

	var result types.MatchScoreResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ScoringError{Stage: "decode", Cause: err}
	}

	if result.Analysis.Strengths == nil {
		result.Analysis.Strengths = []string{}
	}
	if result.Analysis.Gaps == nil {
		result.Analysis.Gaps = []string{}
	}

	return &result, nil
}
