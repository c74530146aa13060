package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanhiring/hiring-agent/internal/db"
)

func TestManager_Start_NoQuestions(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	store.jobs[jobID] = &db.Job{ID: jobID}

	manager := NewManager(store)
	_, err := manager.Start(context.Background(), jobID, uuid.New())
	require.Error(t, err)
	assert.IsType(t, &ErrNoQuestions{}, err)
}

func TestManager_Start_UnknownJob(t *testing.T) {
	manager := NewManager(newFakeStore())
	_, err := manager.Start(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.IsType(t, &ErrNoQuestions{}, err)
}

func TestManager_Start_AlreadyCompleted(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	candidateID := uuid.New()
	store.jobs[jobID] = &db.Job{ID: jobID, TestQuestions: fourQuestions()}
	store.results[sessionKey{jobID: jobID, candidateID: candidateID}] = &db.AssessmentResult{
		JobID:       jobID,
		CandidateID: candidateID,
		Score:       80,
	}

	manager := NewManager(store)
	_, err := manager.Start(context.Background(), jobID, candidateID)
	require.Error(t, err)

	var alreadyCompleted *ErrAlreadyCompleted
	require.ErrorAs(t, err, &alreadyCompleted)
	assert.Equal(t, 80, alreadyCompleted.Score)
}

func TestManager_Start_ReturnsExistingSession(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	candidateID := uuid.New()
	store.jobs[jobID] = &db.Job{ID: jobID, TestQuestions: fourQuestions()}

	manager := NewManager(store)
	first, err := manager.Start(context.Background(), jobID, candidateID)
	require.NoError(t, err)

	// A reload must not reset the clock.
	second, err := manager.Start(context.Background(), jobID, candidateID)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestManager_Finish_RemovesSession(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	candidateID := uuid.New()
	store.jobs[jobID] = &db.Job{ID: jobID, TestQuestions: fourQuestions()}

	manager := NewManager(store)
	session, err := manager.Start(context.Background(), jobID, candidateID)
	require.NoError(t, err)

	result, err := manager.Finish(context.Background(), session)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, manager.Get(jobID, candidateID))

	// Starting again now hits the stored result.
	_, err = manager.Start(context.Background(), jobID, candidateID)
	assert.IsType(t, &ErrAlreadyCompleted{}, err)
}

func TestManager_SweepExpired(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	candidateID := uuid.New()
	store.jobs[jobID] = &db.Job{ID: jobID, TestQuestions: fourQuestions()}

	current := time.Now()
	manager := NewManager(store, WithClock(func() time.Time { return current }))

	session, err := manager.Start(context.Background(), jobID, candidateID)
	require.NoError(t, err)
	require.NoError(t, session.RecordAnswer(0, 0))

	// Not yet expired: sweep is a no-op.
	manager.SweepExpired(context.Background())
	assert.NotNil(t, manager.Get(jobID, candidateID))
	assert.Equal(t, 0, store.upserts)

	current = current.Add(Duration + time.Second)
	manager.SweepExpired(context.Background())

	assert.Nil(t, manager.Get(jobID, candidateID))
	require.Equal(t, 1, store.upserts)

	stored := store.results[sessionKey{jobID: jobID, candidateID: candidateID}]
	require.NotNil(t, stored)
	assert.Equal(t, 25, stored.Score, "auto-submit scores the recorded answers")
}
