package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeParser_Degraded(t *testing.T) {
	parser := NewResumeParser(nil)

	parsed, err := parser.Parse(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Empty(t, parsed.PersonalInfo.Name)
	assert.NotNil(t, parsed.Skills)
	assert.NotNil(t, parsed.Experience)
	assert.NotNil(t, parsed.Education)
	assert.Empty(t, parsed.Skills)
}

func TestResumeParser_Parse(t *testing.T) {
	response := `{
		"personal_info": {"name": "Jane Doe", "email": "jane@example.com", "phone": "", "location": "Berlin"},
		"skills": ["Go", "Kafka"],
		"experience": [{"position": "Engineer", "company": "Acme", "duration": "2020-2024", "responsibilities": ["built services"]}],
		"education": [{"degree": "BSc", "institution": "TU Berlin", "year": "2019"}],
		"total_experience_years": 4.5
	}`
	parser := NewResumeParser(&mockClient{response: response})

	parsed, err := parser.Parse(context.Background(), "Jane Doe\nEngineer at Acme...")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", parsed.PersonalInfo.Name)
	assert.Equal(t, []string{"Go", "Kafka"}, parsed.Skills)
	require.Len(t, parsed.Experience, 1)
	assert.Equal(t, "Acme", parsed.Experience[0].Company)
	assert.InDelta(t, 4.5, parsed.TotalExperienceYears, 0.001)
}

func TestResumeParser_Parse_NilSlices(t *testing.T) {
	response := `{"personal_info": {"name": "X", "email": "", "phone": "", "location": ""}, "total_experience_years": 0}`
	parser := NewResumeParser(&mockClient{response: response})

	parsed, err := parser.Parse(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, parsed.Skills)
	assert.NotNil(t, parsed.Experience)
	assert.NotNil(t, parsed.Education)
}

func TestResumeParser_Parse_InvalidJSON(t *testing.T) {
	parser := NewResumeParser(&mockClient{response: "{{nope"})

	_, err := parser.Parse(context.Background(), "x")
	assert.Error(t, err)
}
