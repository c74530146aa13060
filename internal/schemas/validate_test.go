package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMatchScore = `{
	"overall_score": 75,
	"skills_match": 80,
	"experience_match": 70,
	"education_match": 60,
	"analysis": {
		"strengths": ["relevant stack"],
		"gaps": [],
		"recommendation": "interview"
	}
}`

func TestValidate_MatchScore_Valid(t *testing.T) {
	assert.NoError(t, Validate("match_score.schema.json", validMatchScore))
}

func TestValidate_MatchScore_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "score above 100",
			content: `{"overall_score": 101, "skills_match": 80, "experience_match": 70, "education_match": 60, "analysis": {"strengths": [], "gaps": [], "recommendation": "x"}}`,
		},
		{
			name:    "negative score",
			content: `{"overall_score": -1, "skills_match": 80, "experience_match": 70, "education_match": 60, "analysis": {"strengths": [], "gaps": [], "recommendation": "x"}}`,
		},
		{
			name:    "missing overall_score",
			content: `{"skills_match": 80, "experience_match": 70, "education_match": 60, "analysis": {"strengths": [], "gaps": [], "recommendation": "x"}}`,
		},
		{
			name:    "missing analysis",
			content: `{"overall_score": 50, "skills_match": 80, "experience_match": 70, "education_match": 60}`,
		},
		{
			name:    "score as string",
			content: `{"overall_score": "80", "skills_match": 80, "experience_match": 70, "education_match": 60, "analysis": {"strengths": [], "gaps": [], "recommendation": "x"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("match_score.schema.json", tt.content)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := Validate("match_score.schema.json", "{not json")
	assert.Error(t, err)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", validMatchScore)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
