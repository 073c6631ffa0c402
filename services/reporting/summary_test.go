package reporting_test

import (
	// Go Internal Packages
	"testing"

	// Local Packages
	models "tx-risk/models"
	reporting "tx-risk/services/reporting"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userResult(score float64) models.UserResult {
	return models.UserResult{
		ScoreResult: models.ScoreResult{
			FraudScore: score,
			RiskLevel:  models.RiskLevelFromScore(score),
			Reasons:    map[string]string{},
		},
	}
}

func TestSummarize(t *testing.T) {
	report := &models.Report{
		Users: map[string]models.UserResult{
			"alice": userResult(75),
			"bob":   userResult(40),
			"carol": userResult(64.3),
			"dave":  userResult(39.9),
			"erin":  userResult(5),
			"frank": userResult(64.3),
		},
	}

	summary := reporting.Summarize(report)

	assert.Equal(t, 6, summary.TotalUsers)
	assert.Equal(t, models.RiskDistribution{High: 1, Medium: 3, Low: 1, Minimal: 1}, summary.Distribution)

	require.Len(t, summary.HighRiskUsers, 4)
	ids := make([]string, 0, len(summary.HighRiskUsers))
	for _, u := range summary.HighRiskUsers {
		ids = append(ids, u.UserID)
	}
	assert.Equal(t, []string{"alice", "carol", "frank", "bob"}, ids)
}

func TestSummarize_Empty(t *testing.T) {
	summary := reporting.Summarize(&models.Report{Users: map[string]models.UserResult{}})

	assert.Zero(t, summary.TotalUsers)
	assert.Equal(t, models.RiskDistribution{}, summary.Distribution)
	assert.NotNil(t, summary.HighRiskUsers)
	assert.Empty(t, summary.HighRiskUsers)
}
