package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired,
	} {
		assert.True(t, ValidStatus(status), status)
	}

	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Pending"), "statuses are case sensitive")
}

func TestUpdateApplicationRequest_Validate(t *testing.T) {
	shortlisted := StatusShortlisted
	bad := "archived"
	one, five, six := 1, 5, 6

	assert.NoError(t, (&UpdateApplicationRequest{Status: &shortlisted}).Validate())
	assert.Error(t, (&UpdateApplicationRequest{Status: &bad}).Validate())

	assert.NoError(t, (&UpdateApplicationRequest{Score: &one}).Validate())
	assert.NoError(t, (&UpdateApplicationRequest{Score: &five}).Validate())
	assert.Error(t, (&UpdateApplicationRequest{Score: &six}).Validate())

	assert.NoError(t, (&UpdateApplicationRequest{}).Validate())
}

func TestSendFeedbackRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SendFeedbackRequest{Feedback: "Good work"}).Validate())
	assert.Error(t, (&SendFeedbackRequest{}).Validate())
}

func TestZeroMatchScore(t *testing.T) {
	score := ZeroMatchScore()

	assert.Equal(t, 0, score.OverallScore)
	assert.NotNil(t, score.Analysis.Strengths)
	assert.NotNil(t, score.Analysis.Gaps)
	assert.Empty(t, score.Analysis.Strengths)
}
