// Package assessment administers timed screening tests: a fixed question set
// per job, a 30-minute countdown, and a single percentage score computed by
// exact-match comparison against the stored correct options.
package assessment

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// Duration is the fixed time budget for one attempt.
const Duration = 30 * time.Minute

// State tracks a session through its lifecycle. There is no path back to
// InProgress once Completed.
type State int

// Session states.
const (
	NotStarted State = iota
	InProgress
	Completed
)

// ErrNoQuestions indicates the job has no screening questions.
type ErrNoQuestions struct {
	JobID uuid.UUID
}

func (e *ErrNoQuestions) Error() string {
	return fmt.Sprintf("job %s has no screening questions", e.JobID)
}

// ErrAlreadyCompleted indicates the candidate already completed this
// assessment; at most one attempt exists per (job, candidate) pair.
type ErrAlreadyCompleted struct {
	Score int
}

func (e *ErrAlreadyCompleted) Error() string {
	return fmt.Sprintf("assessment already completed with score %d", e.Score)
}

// ErrNotInProgress indicates an answer or submit arrived for a session that
// is not running.
type ErrNotInProgress struct{}

func (e *ErrNotInProgress) Error() string {
	return "assessment session is not in progress"
}

// Store is the persistence the runner depends on.
type Store interface {
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	GetAssessmentResult(ctx context.Context, jobID, candidateID uuid.UUID) (*db.AssessmentResult, error)
	UpsertAssessmentResult(ctx context.Context, result *db.AssessmentResult) (uuid.UUID, error)
}

// Score computes the percentage score for a set of answers: round(100 *
// correct / total). Unanswered questions count as incorrect.
func Score(questions []types.Question, answers map[int]int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if selected, ok := answers[i]; ok && selected == q.CorrectAnswer {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// Session is one candidate's in-flight attempt at one job's assessment.
type Session struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Questions   []types.Question
	ExpiresAt   time.Time

	mu      sync.Mutex
	state   State
	answers map[int]int
	result  *db.AssessmentResult

	store Store
	now   func() time.Time
}

// CurrentState returns the session's lifecycle state.
func (s *Session) CurrentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Expired reports whether the countdown has reached zero.
func (s *Session) Expired() bool {
	return !s.now().Before(s.ExpiresAt)
}

// RecordAnswer stores a selection for one question. Overwriting a prior
// answer for the same index is allowed; the later value is the one scored.
// Answers arriving after the deadline are rejected; the caller should submit.
func (s *Session) RecordAnswer(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return &ErrNotInProgress{}
	}
	if s.Expired() {
		return &ErrNotInProgress{}
	}
	if questionIndex < 0 || questionIndex >= len(s.Questions) {
		return fmt.Errorf("question index %d out of range", questionIndex)
	}

	s.answers[questionIndex] = optionIndex
	return nil
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Submit scores the recorded answers and persists the completed attempt.
// Submitting past the deadline scores whatever was recorded, including
// nothing at all. A second Submit returns the stored result without writing
// again; with the (job, candidate) upsert key a duplicate row is impossible
// either way.
func (s *Session) Submit(ctx context.Context) (*db.AssessmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Completed {
		return s.result, nil
	}
	if s.state != InProgress {
		return nil, &ErrNotInProgress{}
	}

	result := &db.AssessmentResult{
		JobID:       s.JobID,
		CandidateID: s.CandidateID,
		Score:       Score(s.Questions, s.answers),
		Answers:     s.answers,
		CompletedAt: s.now(),
	}

	id, err := s.store.UpsertAssessmentResult(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to persist assessment result: %w", err)
	}
	result.ID = id

	s.state = Completed
	s.result = result
	return result, nil
}
