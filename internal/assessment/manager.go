package assessment

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/db"
)

// sessionKey identifies one in-flight attempt.
type sessionKey struct {
	jobID       uuid.UUID
	candidateID uuid.UUID
}

// Manager tracks in-flight sessions and enforces the one-attempt rule. The
// countdown is server-side: a background sweep auto-submits sessions whose
// deadline passed with whatever answers were recorded.
type Manager struct {
	store Store
	now   func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects a clock, used by tests to control the countdown.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		now:      time.Now,
		sessions: make(map[sessionKey]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins an attempt for one candidate on one job. It fails with
// ErrNoQuestions when the job has none, and with ErrAlreadyCompleted when a
// completed attempt already exists. Starting while a session is in flight
// returns the existing session so a page reload does not reset the clock.
func (m *Manager) Start(ctx context.Context, jobID, candidateID uuid.UUID) (*Session, error) {
	job, err := m.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || len(job.TestQuestions) == 0 {
		return nil, &ErrNoQuestions{JobID: jobID}
	}

	existing, err := m.store.GetAssessmentResult(ctx, jobID, candidateID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ErrAlreadyCompleted{Score: existing.Score}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey{jobID: jobID, candidateID: candidateID}
	if session, ok := m.sessions[key]; ok && session.CurrentState() == InProgress {
		return session, nil
	}

	session := &Session{
		JobID:       jobID,
		CandidateID: candidateID,
		Questions:   job.TestQuestions,
		ExpiresAt:   m.now().Add(Duration),
		state:       InProgress,
		answers:     make(map[int]int),
		store:       m.store,
		now:         m.now,
	}
	m.sessions[key] = session
	return session, nil
}

// Get returns the in-flight session for a (job, candidate) pair, or nil.
func (m *Manager) Get(jobID, candidateID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionKey{jobID: jobID, candidateID: candidateID}]
}

// Finish submits the session and drops it from the manager.
func (m *Manager) Finish(ctx context.Context, session *Session) (*db.AssessmentResult, error) {
	result, err := session.Submit(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.sessions, sessionKey{jobID: session.JobID, candidateID: session.CandidateID})
	m.mu.Unlock()

	return result, nil
}

// SweepExpired auto-submits every session whose countdown reached zero,
// scoring whatever answers were recorded so far (zero answers scores 0).
func (m *Manager) SweepExpired(ctx context.Context) {
	m.mu.Lock()
	var expired []*Session
	for key, session := range m.sessions {
		if session.Expired() {
			expired = append(expired, session)
			delete(m.sessions, key)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		if _, err := session.Submit(ctx); err != nil {
			log.Printf("assessment: auto-submit for job %s candidate %s failed: %v",
				session.JobID, session.CandidateID, err)
		}
	}
}

// RunSweeper runs SweepExpired on an interval until ctx is canceled.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SweepExpired(ctx)
		}
	}
}
