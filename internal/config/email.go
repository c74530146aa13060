package config

import (
	"fmt"
	"os"
)

// EmailConfig holds credentials for the transactional email provider plus the
// company contact fields injected into every notification template.
type EmailConfig struct {
	BaseURL             string // provider endpoint, e.g. https://api.emailjs.com
	ServiceID           string
	PublicKey           string
	ShortlistTemplateID string
	FeedbackTemplateID  string

	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string
	CompanyWebsite string
}

// NewEmailConfig creates an email configuration from environment variables.
// EMAILJS_SERVICE_ID, EMAILJS_PUBLIC_KEY and the two template IDs are required;
// company contact fields are optional and pass through to templates as-is.
func NewEmailConfig() (*EmailConfig, error) {
	config := &EmailConfig{
		BaseURL:             os.Getenv("EMAILJS_BASE_URL"),
		ServiceID:           os.Getenv("EMAILJS_SERVICE_ID"),
		PublicKey:           os.Getenv("EMAILJS_PUBLIC_KEY"),
		ShortlistTemplateID: os.Getenv("EMAILJS_SHORTLIST_TEMPLATE_ID"),
		FeedbackTemplateID:  os.Getenv("EMAILJS_FEEDBACK_TEMPLATE_ID"),
		CompanyEmail:        os.Getenv("COMPANY_EMAIL"),
		CompanyPhone:        os.Getenv("COMPANY_PHONE"),
		CompanyAddress:      os.Getenv("COMPANY_ADDRESS"),
		CompanyWebsite:      os.Getenv("COMPANY_WEBSITE"),
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://api.emailjs.com"
	}

	if config.ServiceID == "" {
		return nil, fmt.Errorf("EMAILJS_SERVICE_ID is required but not set")
	}
	if config.PublicKey == "" {
		return nil, fmt.Errorf("EMAILJS_PUBLIC_KEY is required but not set")
	}
	if config.ShortlistTemplateID == "" {
		return nil, fmt.Errorf("EMAILJS_SHORTLIST_TEMPLATE_ID is required but not set")
	}
	if config.FeedbackTemplateID == "" {
		return nil, fmt.Errorf("EMAILJS_FEEDBACK_TEMPLATE_ID is required but not set")
	}

	return config, nil
}
