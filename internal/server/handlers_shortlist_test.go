package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/shortlist"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// seedDetail registers one review row for the job, optionally pre-scored.
func seedDetail(mock *mockStore, jobID uuid.UUID, email string, overall *int) *db.ApplicationDetail {
	d := &db.ApplicationDetail{
		CandidateName:  "Candidate",
		CandidateEmail: email,
		JobTitle:       "Backend Engineer",
		CompanyName:    "Acme",
	}
	d.ID = uuid.New()
	d.JobID = jobID
	d.CandidateID = uuid.New()
	d.Status = types.StatusPending
	if overall != nil {
		d.MatchScore = &db.MatchScore{OverallScore: *overall}
	}
	mock.mu.Lock()
	mock.details[jobID] = append(mock.details[jobID], d)
	mock.mu.Unlock()
	return d
}

func TestHandleShortlist(t *testing.T) {
	t.Run("promotes pre-scored candidates above the threshold", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, nil)
		high := 80
		qualified := seedDetail(mock, jobID, "alpha@example.com", &high)
		unscored := seedDetail(mock, jobID, "beta@example.com", nil)

		req := httptest.NewRequest(http.MethodPost, "/jobs/"+jobID.String()+"/shortlist", nil)
		req.SetPathValue("id", jobID.String())
		req = asUser(req, uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleShortlist(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var report shortlist.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Scored)
		assert.Equal(t, 1, report.Shortlisted)
		assert.Equal(t, 1, report.Notified)
		assert.Empty(t, report.Failures)

		assert.Equal(t, types.StatusShortlisted, mock.statusUpdates[qualified.ID])
		_, touched := mock.statusUpdates[unscored.ID]
		assert.False(t, touched)

		score, err := mock.GetMatchScore(context.Background(), jobID, unscored.CandidateID)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, 0, score.OverallScore)

		sender := s.mailer.(*fakeSender)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "alpha@example.com", sender.sent[0]["to_email"])
		assert.Equal(t, "80", sender.sent[0]["match_score"])
	})

	t.Run("unknown job", func(t *testing.T) {
		s, _ := newTestServer(t)
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodPost, "/jobs/"+id+"/shortlist", nil)
		req.SetPathValue("id", id)
		req = asUser(req, uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleShortlist(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid job id", func(t *testing.T) {
		s, _ := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/jobs/nope/shortlist", nil)
		req.SetPathValue("id", "nope")
		req = asUser(req, uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleShortlist(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleAnalytics(t *testing.T) {
	s, mock := newTestServer(t)
	mock.analytics = &db.Analytics{
		JobsByStatus:         map[string]int{"open": 3},
		ApplicationsByStatus: map[string]int{"pending": 5, "shortlisted": 2},
		AssessmentsCompleted: 4,
		AverageMatchScore:    71.5,
		TotalUsers:           9,
	}

	req := asUser(httptest.NewRequest(http.MethodGet, "/analytics", nil), uuid.New(), true)
	w := httptest.NewRecorder()

	s.handleAnalytics(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got db.Analytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.JobsByStatus["open"])
	assert.Equal(t, 4, got.AssessmentsCompleted)
	assert.Equal(t, 71.5, got.AverageMatchScore)
	assert.Equal(t, 9, got.TotalUsers)
}
