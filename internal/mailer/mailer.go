// Package mailer provides transactional email delivery through a hosted
// template service. Messages are a template identifier plus a flat key-value
// parameter set; no delivery-status callbacks are consumed.
package mailer

import (
	"context"
	"fmt"
	"strconv"
)

// Params is the flat key-value parameter set a template renders with.
type Params map[string]string

// Mailer sends templated transactional email.
type Mailer interface {
	// Send renders the template identified by templateID with params and
	// delivers it. The recipient address lives inside params (to_email).
	Send(ctx context.Context, templateID string, params Params) error
}

// SendError indicates delivery failed for one message.
type SendError struct {
	TemplateID string
	Cause      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send email (template %s): %v", e.TemplateID, e.Cause)
}

func (e *SendError) Unwrap() error {
	return e.Cause
}

// Disabled stands in when no email provider is configured. Every send fails
// with a SendError so callers record the miss instead of panicking.
type Disabled struct{}

// Send always fails.
func (Disabled) Send(_ context.Context, templateID string, _ Params) error {
	return &SendError{TemplateID: templateID, Cause: fmt.Errorf("email notifications disabled")}
}

// CompanyContact carries the static contact fields injected into every
// notification template.
type CompanyContact struct {
	Email   string
	Phone   string
	Address string
	Website string
}

// ShortlistParams builds the parameter set for a shortlist notification.
func ShortlistParams(toEmail, toName, jobTitle, companyName string, matchScore int, contact CompanyContact) Params {
	return Params{
		"to_email":        toEmail,
		"to_name":         toName,
		"job_title":       jobTitle,
		"company_name":    companyName,
		"match_score":     strconv.Itoa(matchScore),
		"company_email":   contact.Email,
		"company_phone":   contact.Phone,
		"company_address": contact.Address,
		"company_website": contact.Website,
	}
}

// FeedbackParams builds the parameter set for an application feedback email.
func FeedbackParams(toEmail, jobTitle, feedback string, score int) Params {
	return Params{
		"to_email":  toEmail,
		"subject":   "Application Update for " + jobTitle,
		"job_title": jobTitle,
		"score":     strconv.Itoa(score),
		"feedback":  feedback,
	}
}
