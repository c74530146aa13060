package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ramanhiring/hiring-agent/internal/config"
)

// requestTimeout bounds one delivery attempt.
const requestTimeout = 30 * time.Second

// EmailJSMailer delivers mail through an EmailJS-compatible REST endpoint
// (POST /api/v1.0/email/send with service, template and user IDs).
type EmailJSMailer struct {
	cfg    *config.EmailConfig
	client *http.Client
}

// NewEmailJSMailer creates a mailer from the email configuration.
func NewEmailJSMailer(cfg *config.EmailConfig) *EmailJSMailer {
	return &EmailJSMailer{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type sendRequest struct {
	ServiceID      string `json:"service_id"`
	TemplateID     string `json:"template_id"`
	UserID         string `json:"user_id"`
	TemplateParams Params `json:"template_params"`
}

// Send posts the templated message to the provider.
func (m *EmailJSMailer) Send(ctx context.Context, templateID string, params Params) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      m.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         m.cfg.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return &SendError{TemplateID: templateID, Cause: err}
	}

	url := m.cfg.BaseURL + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &SendError{TemplateID: templateID, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return &SendError{TemplateID: templateID, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &SendError{
			TemplateID: templateID,
			Cause:      fmt.Errorf("provider returned %d: %s", resp.StatusCode, msg),
		}
	}

	return nil
}
