package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriber_Degraded(t *testing.T) {
	describer := NewDescriber(nil)

	text, err := describer.Describe(context.Background(), "Data Engineer", "Spark, Airflow")
	require.NoError(t, err)
	assert.Contains(t, text, "Data Engineer")
	assert.Contains(t, text, "Spark, Airflow")
	assert.Contains(t, text, "GEMINI_API_KEY")
}

func TestDescriber_Describe(t *testing.T) {
	client := &mockClient{response: "## About the role\nYou will build pipelines."}
	describer := NewDescriber(client)

	text, err := describer.Describe(context.Background(), "Data Engineer", "Spark")
	require.NoError(t, err)
	assert.Equal(t, "## About the role\nYou will build pipelines.", text)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Data Engineer")
}

func TestDescriber_Describe_Error(t *testing.T) {
	describer := NewDescriber(&mockClient{err: fmt.Errorf("timeout")})

	_, err := describer.Describe(context.Background(), "Data Engineer", "Spark")
	assert.Error(t, err)
}
