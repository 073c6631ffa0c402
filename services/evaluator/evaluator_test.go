package evaluator_test

import (
	// Go Internal Packages
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"
	evaluator "tx-risk/services/evaluator"
	normalizer "tx-risk/services/normalizer"
	scoring "tx-risk/services/scoring"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleSpender  = "k5773tawpex42z7p6wrr1sqbfx7pkbc4"
	sampleStreamer = "k575mjt0ebxy1fd7p6dpcep3kx7pk0rz"
	samplePlatform = "k5774ebjkaafqendyy4pstr1ys7pj6ga"
	sampleTopUp    = "k570ypp1b5tyrf1py60ggkb43n7pjfe5"
)

func loadSample(t *testing.T) []models.Transaction {
	t.Helper()
	f, err := os.Open("../../testdata/sample_transactions.json")
	require.NoError(t, err)
	defer f.Close()

	txs, err := normalizer.DecodeTransactions(f)
	require.NoError(t, err)
	return txs
}

func TestEvaluate_SampleBatch(t *testing.T) {
	report, err := evaluator.NewDefaultEvaluator().Evaluate(loadSample(t))
	require.NoError(t, err)

	require.Len(t, report.Users, 4)

	tests := []struct {
		user  string
		count int
		score float64
		level models.RiskLevel
		rules []string
	}{
		{
			user: sampleSpender, count: 23, score: 63.47826086956522, level: models.RiskLevelMedium,
			rules: []string{scoring.RuleHighVelocity, scoring.RuleAmountOutliers, scoring.RuleRoundAmounts,
				scoring.RuleLargeTransactions, scoring.RuleOffHours},
		},
		{
			user: sampleStreamer, count: 14, score: 64.28571428571428, level: models.RiskLevelMedium,
			rules: []string{scoring.RuleHighVelocity, scoring.RuleRoundAmounts, scoring.RuleLargeTransactions,
				scoring.RuleOffHours, scoring.RuleLowDiversity},
		},
		{
			user: samplePlatform, count: 7, score: 60, level: models.RiskLevelMedium,
			rules: []string{scoring.RuleHighVelocity, scoring.RuleRoundAmounts, scoring.RuleOffHours,
				scoring.RuleLowDiversity},
		},
		{
			user: sampleTopUp, count: 2, score: 40, level: models.RiskLevelMedium,
			rules: []string{scoring.RuleRoundAmounts, scoring.RuleLargeTransactions, scoring.RuleOffHours},
		},
	}

	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			res, ok := report.Users[tt.user]
			require.True(t, ok)

			assert.Equal(t, tt.count, res.Features.TransactionCount)
			assert.InDelta(t, tt.score, res.FraudScore, 1e-9)
			assert.True(t, tt.level.Equal(res.RiskLevel), res.RiskLevel.String())
			assert.ElementsMatch(t, tt.rules, keys(res.Reasons))
		})
	}

	assert.Equal(t, "1 transactions with unusual amounts", report.Users[sampleSpender].Reasons[scoring.RuleAmountOutliers])
	assert.Equal(t, "22 rapid transaction periods", report.Users[sampleSpender].Reasons[scoring.RuleHighVelocity])

	overall := report.Overall
	assert.Equal(t, 23, overall.Features.TotalTransactions)
	assert.Equal(t, 4, overall.Features.UniqueUsers)
	assert.Equal(t, "25920000000", overall.Features.TotalVolume.String())
	assert.InDelta(t, 0.5833333333333334, overall.Features.VolumeConcentration, 1e-12)
	assert.Equal(t, 20.0, overall.FraudScore)
	assert.True(t, models.RiskLevelLow.Equal(overall.RiskLevel))
	assert.Equal(t, map[string]string{scoring.RuleHighRate: "High transaction rate: 23.6 per hour"}, overall.Reasons)
}

// Three transfers from one sender inside five minutes at 03:00 UTC.
func TestEvaluate_BurstAtNight(t *testing.T) {
	at := time.Date(2025, 8, 30, 3, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "1", CreatedAt: at.UnixMilli(), Amount: "1000000000", SenderID: "S", ReceiverID: "R1", Owner: "S", Type: "gift-give"},
		{ID: "2", CreatedAt: at.Add(time.Minute).UnixMilli(), Amount: "500000", SenderID: "S", ReceiverID: "R2", Owner: "S", Type: "gift-give"},
		{ID: "3", CreatedAt: at.Add(2 * time.Minute).UnixMilli(), Amount: "500000", SenderID: "S", ReceiverID: "R3", Owner: "S", Type: "gift-give"},
	}

	report, err := evaluator.NewDefaultEvaluator().Evaluate(txs)
	require.NoError(t, err)

	sender := report.Users["S"]
	assert.GreaterOrEqual(t, sender.Features.HighVelocityPeriods, 1)
	assert.Equal(t, 1, sender.Features.LargeTransactionCount)
	assert.Equal(t, 1.0, sender.Features.OffHoursRatio)
	// 500000 is not a multiple of 1000000, so only the first amount is round.
	assert.InDelta(t, 1.0/3.0, sender.Features.RoundAmountRatio, 1e-12)

	assert.Contains(t, sender.Reasons, scoring.RuleHighVelocity)
	assert.Contains(t, sender.Reasons, scoring.RuleLargeTransactions)
	assert.Contains(t, sender.Reasons, scoring.RuleOffHours)
	assert.NotContains(t, sender.Reasons, scoring.RuleRoundAmounts)
	// 10 (velocity) + 20/3 (large) + 15 (off hours)
	assert.InDelta(t, 10+20.0/3.0+15, sender.FraudScore, 1e-9)
	assert.True(t, models.RiskLevelLow.Equal(sender.RiskLevel))

	// R1 only sees the large, round transfer.
	assert.InDelta(t, 50.0, report.Users["R1"].FraudScore, 1e-9)
	assert.InDelta(t, 15.0, report.Users["R2"].FraudScore, 1e-9)

	assert.Equal(t, 1.0, report.Overall.Features.VolumeConcentration)
	assert.Contains(t, report.Overall.Reasons, scoring.RuleConcentration)
	// rate is 90 per hour: min(80*2, 20) + 15
	assert.InDelta(t, 35.0, report.Overall.FraudScore, 1e-9)
}

func TestEvaluate_OnlyParticipantsWithTransactions(t *testing.T) {
	txs := []models.Transaction{
		{CreatedAt: int64(1000), Amount: "10", SenderID: "a", ReceiverID: "b"},
		{CreatedAt: int64(2000), Amount: "10", Owner: "c"},
	}

	report, err := evaluator.NewDefaultEvaluator().Evaluate(txs)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, keys(report.Users))
	for id, res := range report.Users {
		assert.Positive(t, res.Features.TransactionCount, id)
		assert.GreaterOrEqual(t, res.FraudScore, 0.0)
		assert.LessOrEqual(t, res.FraudScore, 100.0)
	}
	assert.Equal(t, 0, report.Users["c"].Features.UniqueCounterparties)
}

func TestEvaluate_EmptyBatch(t *testing.T) {
	report, err := evaluator.NewDefaultEvaluator().Evaluate([]models.Transaction{})
	require.NoError(t, err)

	assert.Empty(t, report.Users)
	assert.Zero(t, report.Overall.FraudScore)
	assert.Empty(t, report.Overall.Reasons)
	assert.True(t, models.RiskLevelMinimal.Equal(report.Overall.RiskLevel))

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"users":{}`)
}

func TestEvaluate_MalformedRecordFailsBatch(t *testing.T) {
	txs := loadSample(t)
	txs[5].Amount = "five hundred"

	report, err := evaluator.NewDefaultEvaluator().Evaluate(txs)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(errors.Invalid, err))
	assert.Contains(t, err.Error(), "index 5")
}

func TestEvaluate_Idempotent(t *testing.T) {
	txs := loadSample(t)
	ev := evaluator.NewDefaultEvaluator()

	first, err := ev.Evaluate(txs)
	require.NoError(t, err)
	second, err := ev.Evaluate(txs)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestEvaluate_AmountsBeyondFloat64(t *testing.T) {
	huge := "1" + strings.Repeat("0", 160)
	txs := []models.Transaction{
		{CreatedAt: json.Number("1736400000000"), Amount: "0", SenderID: "alice", ReceiverID: "bob", Type: "gift-give"},
		{CreatedAt: json.Number("1736400060000"), Amount: json.Number(huge), SenderID: "alice", ReceiverID: "bob", Type: "gift-give"},
	}

	report, err := evaluator.NewDefaultEvaluator().Evaluate(txs)
	require.NoError(t, err)

	assert.Equal(t, huge, report.Overall.Features.TotalVolume.String())
	_, err = json.Marshal(report)
	require.NoError(t, err)
}
