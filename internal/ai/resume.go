package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ramanhiring/hiring-agent/internal/llm"
	"github.com/ramanhiring/hiring-agent/internal/prompts"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ResumeParser extracts structured profile data from free-text resumes.
// A nil client returns the empty skeleton without calling out.
type ResumeParser struct {
	client llm.Client
}

// NewResumeParser creates a resume parser. Pass a nil client for degraded mode.
func NewResumeParser(client llm.Client) *ResumeParser {
	return &ResumeParser{client: client}
}

// Parse extracts structured information from resume text.
func (p *ResumeParser) Parse(ctx context.Context, text string) (*types.ParsedResume, error) {
	if p.client == nil {
		return types.EmptyParsedResume(), nil
	}

	prompt := prompts.Format(prompts.MustGet("extraction.json", "parse_resume"), map[string]string{
		"ResumeText": text,
	})

	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TaskExtraction)
	if err != nil {
		return nil, fmt.Errorf("resume parsing failed: %w", err)
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("resume parsing returned invalid JSON: %w", err)
	}

	if parsed.Skills == nil {
		parsed.Skills = []string{}
	}
	if parsed.Experience == nil {
		parsed.Experience = []types.ExperienceEntry{}
	}
	if parsed.Education == nil {
		parsed.Education = []types.EducationEntry{}
	}

	return &parsed, nil
}
