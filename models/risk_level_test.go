package models_test

import (
	// Go Internal Packages
	"encoding/json"
	"testing"

	// Local Packages
	models "tx-risk/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevel_FromScore(t *testing.T) {
	tests := []struct {
		name     string
		expected models.RiskLevel
		score    float64
	}{
		{name: "score 0 is MINIMAL", expected: models.RiskLevelMinimal, score: 0},
		{name: "score 19.999 is MINIMAL", expected: models.RiskLevelMinimal, score: 19.999},
		{name: "score 20 is LOW", expected: models.RiskLevelLow, score: 20},
		{name: "score 39.999 is LOW", expected: models.RiskLevelLow, score: 39.999},
		{name: "score 40 is MEDIUM", expected: models.RiskLevelMedium, score: 40},
		{name: "score 69.999 is MEDIUM", expected: models.RiskLevelMedium, score: 69.999},
		{name: "score 70 is HIGH", expected: models.RiskLevelHigh, score: 70},
		{name: "score 100 is HIGH", expected: models.RiskLevelHigh, score: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := models.RiskLevelFromScore(tt.score)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for score %v, got %s", tt.expected.String(), tt.score, result.String())
		})
	}
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected models.RiskLevel
		wantErr  bool
	}{
		{"MINIMAL", models.RiskLevelMinimal, false},
		{"LOW", models.RiskLevelLow, false},
		{"MEDIUM", models.RiskLevelMedium, false},
		{"HIGH", models.RiskLevelHigh, false},
		{"CRITICAL", models.RiskLevel{}, true},
		{"", models.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := models.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestRiskLevel_JSON(t *testing.T) {
	res := models.ScoreResult{FraudScore: 45, RiskLevel: models.RiskLevelMedium, Reasons: map[string]string{}}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fraud_score":45,"risk_level":"MEDIUM","reasons":{}}`, string(data))

	var back models.ScoreResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, models.RiskLevelMedium.Equal(back.RiskLevel))
}
