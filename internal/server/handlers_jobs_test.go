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

// sampleQuestions returns a two-question screening test with known correct
// answers.
func sampleQuestions() []types.Question {
	return []types.Question{
		{
			Question:      "Which HTTP status code means Not Found?",
			Options:       []string{"200", "301", "404", "500"},
			CorrectAnswer: 2,
		},
		{
			Question:      "Which command initializes a module?",
			Options:       []string{"go run", "go mod init", "go vet", "go fmt"},
			CorrectAnswer: 1,
		},
	}
}

// seedJob inserts an open job with screening questions and returns its ID.
func seedJob(t *testing.T, mock *mockStore, questions []types.Question) uuid.UUID {
	t.Helper()
	id, err := mock.CreateJob(context.Background(), uuid.New(), &types.CreateJobRequest{
		Title:         "Backend Engineer",
		CompanyName:   "Acme",
		Requirements:  "Go, PostgreSQL",
		TestQuestions: questions,
	})
	require.NoError(t, err)
	return id
}

func TestHandleCreateJob(t *testing.T) {
	t.Run("creates job", func(t *testing.T) {
		s, mock := newTestServer(t)
		body := `{"title":"Backend Engineer","company_name":"Acme","requirements":"Go"}`
		req := asUser(httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body)), uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleCreateJob(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		id, err := uuid.Parse(resp["id"])
		require.NoError(t, err)
		job, err := mock.GetJob(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", job.Title)
		assert.Equal(t, types.JobStatusOpen, job.Status)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		s, _ := newTestServer(t)
		req := asUser(httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{"title":"No Company"}`)), uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleCreateJob(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		s, _ := newTestServer(t)
		req := asUser(httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{not json`)), uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleCreateJob(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "Invalid request body")
	})

	t.Run("requires authentication", func(t *testing.T) {
		s, _ := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		s.handleCreateJob(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleGetJob_RedactsAnswersForNonAdmin(t *testing.T) {
	s, mock := newTestServer(t)
	jobID := seedJob(t, mock, sampleQuestions())

	req := httptest.NewRequest(http.MethodGet, "/jobs/"+jobID.String(), nil)
	req.SetPathValue("id", jobID.String())
	req = asUser(req, uuid.New(), false)
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got db.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.TestQuestions, 2)
	for _, q := range got.TestQuestions {
		assert.Equal(t, -1, q.CorrectAnswer)
		assert.Len(t, q.Options, 4)
	}

	// The stored job keeps its answer key intact.
	stored, err := mock.GetJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.TestQuestions[0].CorrectAnswer)
	assert.Equal(t, 1, stored.TestQuestions[1].CorrectAnswer)
}

func TestHandleGetJob_AdminSeesAnswers(t *testing.T) {
	s, mock := newTestServer(t)
	jobID := seedJob(t, mock, sampleQuestions())

	req := httptest.NewRequest(http.MethodGet, "/jobs/"+jobID.String(), nil)
	req.SetPathValue("id", jobID.String())
	req = asUser(req, uuid.New(), true)
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got db.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.TestQuestions, 2)
	assert.Equal(t, 2, got.TestQuestions[0].CorrectAnswer)
	assert.Equal(t, 1, got.TestQuestions[1].CorrectAnswer)
}

func TestHandleGetJob_Errors(t *testing.T) {
	tests := []struct {
		name       string
		pathID     string
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid id",
			pathID:     "not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid job ID",
		},
		{
			name:       "unknown job",
			pathID:     uuid.NewString(),
			wantStatus: http.StatusNotFound,
			wantError:  "Job not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			req := httptest.NewRequest(http.MethodGet, "/jobs/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			s.handleGetJob(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.wantError)
		})
	}
}

func TestHandleListJobs(t *testing.T) {
	t.Run("redacts answers for anonymous callers", func(t *testing.T) {
		s, mock := newTestServer(t)
		seedJob(t, mock, sampleQuestions())

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		w := httptest.NewRecorder()

		s.handleListJobs(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Jobs  []db.Job `json:"jobs"`
			Count int      `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		for _, q := range resp.Jobs[0].TestQuestions {
			assert.Equal(t, -1, q.CorrectAnswer)
		}
	})

	t.Run("keeps answers for admins", func(t *testing.T) {
		s, mock := newTestServer(t)
		seedJob(t, mock, sampleQuestions())

		req := asUser(httptest.NewRequest(http.MethodGet, "/jobs", nil), uuid.New(), true)
		w := httptest.NewRecorder()

		s.handleListJobs(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Jobs []db.Job `json:"jobs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, 2, resp.Jobs[0].TestQuestions[0].CorrectAnswer)
	})

	t.Run("filters by status", func(t *testing.T) {
		s, mock := newTestServer(t)
		openID := seedJob(t, mock, nil)
		closedID := seedJob(t, mock, nil)
		closed := types.JobStatusClosed
		require.NoError(t, mock.UpdateJob(context.Background(), closedID, &types.UpdateJobRequest{Status: &closed}))

		req := httptest.NewRequest(http.MethodGet, "/jobs?status=open", nil)
		w := httptest.NewRecorder()

		s.handleListJobs(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Jobs []db.Job `json:"jobs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, openID, resp.Jobs[0].ID)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		s, _ := newTestServer(t)
		req := httptest.NewRequest(http.MethodGet, "/jobs?status=archived", nil)
		w := httptest.NewRecorder()

		s.handleListJobs(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "Invalid status filter")
	})
}

func TestHandleUpdateJob(t *testing.T) {
	t.Run("updates status", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, nil)

		req := httptest.NewRequest(http.MethodPut, "/jobs/"+jobID.String(), strings.NewReader(`{"status":"closed"}`))
		req.SetPathValue("id", jobID.String())
		w := httptest.NewRecorder()

		s.handleUpdateJob(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		job, err := mock.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		assert.Equal(t, types.JobStatusClosed, job.Status)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		s, mock := newTestServer(t)
		jobID := seedJob(t, mock, nil)

		req := httptest.NewRequest(http.MethodPut, "/jobs/"+jobID.String(), strings.NewReader(`{"status":"archived"}`))
		req.SetPathValue("id", jobID.String())
		w := httptest.NewRecorder()

		s.handleUpdateJob(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown job", func(t *testing.T) {
		s, _ := newTestServer(t)
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodPut, "/jobs/"+id, strings.NewReader(`{"title":"New"}`))
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		s.handleUpdateJob(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleDeleteJob(t *testing.T) {
	s, mock := newTestServer(t)
	jobID := seedJob(t, mock, nil)

	req := httptest.NewRequest(http.MethodDelete, "/jobs/"+jobID.String(), nil)
	req.SetPathValue("id", jobID.String())
	w := httptest.NewRecorder()

	s.handleDeleteJob(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	job, err := mock.GetJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestHandleDescribeJob(t *testing.T) {
	t.Run("returns generated description", func(t *testing.T) {
		s, _ := newTestServer(t)
		body := `{"title":"Backend Engineer","requirements":"Go"}`
		req := httptest.NewRequest(http.MethodPost, "/jobs/describe", strings.NewReader(body))
		w := httptest.NewRecorder()

		s.handleDescribeJob(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["description"], "Backend Engineer")
	})

	t.Run("requires title", func(t *testing.T) {
		s, _ := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/jobs/describe", strings.NewReader(`{"requirements":"Go"}`))
		w := httptest.NewRecorder()

		s.handleDescribeJob(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "Title is required")
	})
}

func TestRedactAnswers(t *testing.T) {
	questions := sampleQuestions()
	redacted := redactAnswers(questions)

	require.Len(t, redacted, 2)
	for _, q := range redacted {
		assert.Equal(t, -1, q.CorrectAnswer)
	}
	// Input slice is left alone.
	assert.Equal(t, 2, questions[0].CorrectAnswer)
	assert.Equal(t, 1, questions[1].CorrectAnswer)

	assert.Empty(t, redactAnswers(nil))
}
