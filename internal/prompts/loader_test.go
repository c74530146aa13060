package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	tests := []struct {
		filename string
		key      string
	}{
		{"scoring.json", "match_score"},
		{"description.json", "job_description"},
		{"extraction.json", "parse_resume"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "anything")
	assert.Error(t, err)
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("scoring.json", "no_such_key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_key")
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("scoring.json", "no_such_key")
	})
}

func TestFormat(t *testing.T) {
	template := "Job: {{.Title}}. Needs: {{.Requirements}}. Repeat: {{.Title}}"
	result := Format(template, map[string]string{
		"Title":        "Backend Engineer",
		"Requirements": "Go",
	})

	assert.Equal(t, "Job: Backend Engineer. Needs: Go. Repeat: Backend Engineer", result)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestScoringPrompt_Placeholders(t *testing.T) {
	prompt := MustGet("scoring.json", "match_score")

	for _, placeholder := range []string{
		"{{.Title}}", "{{.Requirements}}", "{{.Experience}}",
		"{{.Skills}}", "{{.ExperienceYears}}", "{{.CurrentPosition}}", "{{.Education}}",
	} {
		assert.True(t, strings.Contains(prompt, placeholder),
			"scoring prompt missing placeholder %s", placeholder)
	}
}
