package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// assessmentRequest builds an authenticated request against one of the
// /jobs/{id}/assessment routes.
func assessmentRequest(method, path string, jobID, candidateID uuid.UUID, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	r.SetPathValue("id", jobID.String())
	return asUser(r, candidateID, false)
}

func TestHandleStartAssessment_RedactsAnswers(t *testing.T) {
	s, mock := newTestServer(t)
	jobID := seedJob(t, mock, sampleQuestions())
	candidateID := uuid.New()

	req := assessmentRequest(http.MethodPost, "/jobs/"+jobID.String()+"/assessment/start", jobID, candidateID, "")
	w := httptest.NewRecorder()

	s.handleStartAssessment(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		JobID     uuid.UUID        `json:"job_id"`
		Questions []types.Question `json:"questions"`
		Remaining int              `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, jobID, resp.JobID)
	require.Len(t, resp.Questions, 2)
	for _, q := range resp.Questions {
		assert.Equal(t, -1, q.CorrectAnswer)
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 4)
	}
	assert.Greater(t, resp.Remaining, 0)
}

func TestHandleStartAssessment_Errors(t *testing.T) {
	t.Run("job without questions", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, nil)

		req := assessmentRequest(http.MethodPost, "/jobs/"+jobID.String()+"/assessment/start", jobID, uuid.New(), "")
		w := httptest.NewRecorder()

		s.handleStartAssessment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already completed", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, sampleQuestions())
		candidateID := uuid.New()
		_, err := mock.UpsertAssessmentResult(context.Background(), &db.AssessmentResult{
			JobID:       jobID,
			CandidateID: candidateID,
			Score:       50,
		})
		require.NoError(t, err)

		req := assessmentRequest(http.MethodPost, "/jobs/"+jobID.String()+"/assessment/start", jobID, candidateID, "")
		w := httptest.NewRecorder()

		s.handleStartAssessment(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, sampleQuestions())

		req := httptest.NewRequest(http.MethodPost, "/jobs/"+jobID.String()+"/assessment/start", nil)
		req.SetPathValue("id", jobID.String())
		w := httptest.NewRecorder()

		s.handleStartAssessment(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAssessmentFlow_AnswerSubmitScore(t *testing.T) {
	s, mock := newTestServer(t)
	jobID := seedJob(t, mock, sampleQuestions())
	candidateID := uuid.New()
	base := "/jobs/" + jobID.String() + "/assessment"

	w := httptest.NewRecorder()
	s.handleStartAssessment(w, assessmentRequest(http.MethodPost, base+"/start", jobID, candidateID, ""))
	require.Equal(t, http.StatusOK, w.Code)

	// One right answer, one wrong.
	w = httptest.NewRecorder()
	s.handleRecordAnswer(w, assessmentRequest(http.MethodPost, base+"/answers", jobID, candidateID,
		`{"question_index":0,"option_index":2}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.handleRecordAnswer(w, assessmentRequest(http.MethodPost, base+"/answers", jobID, candidateID,
		`{"question_index":1,"option_index":0}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.handleSubmitAssessment(w, assessmentRequest(http.MethodPost, base+"/submit", jobID, candidateID, ""))
	require.Equal(t, http.StatusOK, w.Code)

	var result db.AssessmentResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 50, result.Score)

	stored, err := mock.GetAssessmentResult(context.Background(), jobID, candidateID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 50, stored.Score)
}

func TestHandleRecordAnswer_NoActiveSession(t *testing.T) {
	s, mock := newTestServer(t)
	jobID := seedJob(t, mock, sampleQuestions())

	req := assessmentRequest(http.MethodPost, "/jobs/"+jobID.String()+"/assessment/answers", jobID, uuid.New(),
		`{"question_index":0,"option_index":1}`)
	w := httptest.NewRecorder()

	s.handleRecordAnswer(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "No active assessment")
}

func TestHandleAssessmentStatus(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, sampleQuestions())

		req := assessmentRequest(http.MethodGet, "/jobs/"+jobID.String()+"/assessment", jobID, uuid.New(), "")
		w := httptest.NewRecorder()

		s.handleAssessmentStatus(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_started", resp["state"])
	})

	t.Run("in progress", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, sampleQuestions())
		candidateID := uuid.New()

		w := httptest.NewRecorder()
		s.handleStartAssessment(w, assessmentRequest(http.MethodPost, "/jobs/"+jobID.String()+"/assessment/start", jobID, candidateID, ""))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		s.handleAssessmentStatus(w, assessmentRequest(http.MethodGet, "/jobs/"+jobID.String()+"/assessment", jobID, candidateID, ""))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			State     string `json:"state"`
			Remaining int    `json:"remaining"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "in_progress", resp.State)
		assert.Greater(t, resp.Remaining, 0)
	})

	t.Run("completed", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, sampleQuestions())
		candidateID := uuid.New()
		_, err := mock.UpsertAssessmentResult(context.Background(), &db.AssessmentResult{
			JobID:       jobID,
			CandidateID: candidateID,
			Score:       75,
		})
		require.NoError(t, err)

		req := assessmentRequest(http.MethodGet, "/jobs/"+jobID.String()+"/assessment", jobID, candidateID, "")
		w := httptest.NewRecorder()

		s.handleAssessmentStatus(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			State string `json:"state"`
			Score int    `json:"score"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "completed", resp.State)
		assert.Equal(t, 75, resp.Score)
	})
}
