package ai

import (
	"context"
	"fmt"

	"github.com/ramanhiring/hiring-agent/internal/llm"
	"github.com/ramanhiring/hiring-agent/internal/prompts"
)

// Describer generates markdown job descriptions from a title and a
// requirements blob. A nil client produces the degraded-mode placeholder.
type Describer struct {
	client llm.Client
}

// NewDescriber creates a describer. Pass a nil client for degraded mode.
func NewDescriber(client llm.Client) *Describer {
	return &Describer{client: client}
}

// Describe generates a full job description. In degraded mode it returns a
// usable placeholder rather than an error so admins can still publish jobs.
func (d *Describer) Describe(ctx context.Context, title, requirements string) (string, error) {
	if d.client == nil {
		return fmt.Sprintf("**Job Title:** %s\n\n**Key Responsibilities:**\n- Based on the requirements: %s, the AI would generate a full job description here.\n\n**Qualifications:**\n- The AI would list required qualifications based on the provided details.\n\n*Please set GEMINI_API_KEY to enable live AI generation.*",
			title, requirements), nil
	}

	prompt := prompts.Format(prompts.MustGet("description.json", "job_description"), map[string]string{
		"Title":        title,
		"Requirements": requirements,
	})

	text, err := d.client.GenerateContent(ctx, prompt, llm.TaskDescription)
	if err != nil {
		return "", fmt.Errorf("failed to generate job description: %w", err)
	}
	return text, nil
}
