package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanhiring/hiring-agent/internal/config"
)

func testEmailConfig(baseURL string) *config.EmailConfig {
	return &config.EmailConfig{
		BaseURL:   baseURL,
		ServiceID: "service_abc",
		PublicKey: "user_xyz",
	}
}

func TestEmailJSMailer_Send(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewEmailJSMailer(testEmailConfig(server.URL))
	params := Params{"to_email": "x@example.com", "job_title": "Backend Engineer"}

	err := m.Send(context.Background(), "tmpl_shortlist", params)
	require.NoError(t, err)

	assert.Equal(t, "service_abc", got.ServiceID)
	assert.Equal(t, "tmpl_shortlist", got.TemplateID)
	assert.Equal(t, "user_xyz", got.UserID)
	assert.Equal(t, "x@example.com", got.TemplateParams["to_email"])
}

func TestEmailJSMailer_Send_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid template", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	m := NewEmailJSMailer(testEmailConfig(server.URL))
	err := m.Send(context.Background(), "tmpl_bad", Params{})
	require.Error(t, err)

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "tmpl_bad", sendErr.TemplateID)
	assert.Contains(t, sendErr.Error(), "422")
}

func TestEmailJSMailer_Send_ConnectionRefused(t *testing.T) {
	m := NewEmailJSMailer(testEmailConfig("http://127.0.0.1:1"))

	err := m.Send(context.Background(), "tmpl", Params{})
	var sendErr *SendError
	assert.ErrorAs(t, err, &sendErr)
}

func TestDisabled_Send(t *testing.T) {
	err := Disabled{}.Send(context.Background(), "tmpl", Params{})
	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "tmpl", sendErr.TemplateID)
}

func TestShortlistParams(t *testing.T) {
	contact := CompanyContact{
		Email:   "hr@ramanhiring.example",
		Phone:   "+1 555 0100",
		Address: "1 Main St",
		Website: "https://ramanhiring.example",
	}

	params := ShortlistParams("jane@example.com", "Jane", "Backend Engineer", "Raman Hiring", 82, contact)

	assert.Equal(t, "jane@example.com", params["to_email"])
	assert.Equal(t, "Jane", params["to_name"])
	assert.Equal(t, "Backend Engineer", params["job_title"])
	assert.Equal(t, "Raman Hiring", params["company_name"])
	assert.Equal(t, "82", params["match_score"])
	assert.Equal(t, "hr@ramanhiring.example", params["company_email"])
	assert.Equal(t, "https://ramanhiring.example", params["company_website"])
}

func TestFeedbackParams(t *testing.T) {
	params := FeedbackParams("jane@example.com", "Backend Engineer", "Strong submission", 4)

	assert.Equal(t, "jane@example.com", params["to_email"])
	assert.Equal(t, "Application Update for Backend Engineer", params["subject"])
	assert.Equal(t, "4", params["score"])
	assert.Equal(t, "Strong submission", params["feedback"])
}
