// Package scoring maps feature vectors to a bounded fraud score with the reasons that
// produced it. Every rule is independent and additive; the total is clamped to [0, 100].
package scoring

import (
	// Go Internal Packages
	"fmt"
	"math"

	// Local Packages
	models "tx-risk/models"
)

const MaxScore = 100.0

// Rule names, also used as the keys of ScoreResult.Reasons.
const (
	RuleHighVelocity         = "high_velocity"
	RuleAmountOutliers       = "amount_outliers"
	RuleRoundAmounts         = "round_amounts"
	RuleLargeTransactions    = "large_transactions"
	RuleOffHours             = "off_hours"
	RuleCircularTransactions = "circular_transactions"
	RuleLowDiversity         = "low_diversity"
	RuleHighRate             = "high_rate"
	RuleConcentration        = "concentration"
)

// Rule weights and firing thresholds.
const (
	velocityPointsPerPeriod = 10.0
	velocityCap             = 25.0

	outlierPointsPerTx = 5.0
	outlierCap         = 20.0

	roundRatioThreshold = 0.5
	roundWeight         = 15.0

	largeWeight = 20.0
	largeCap    = 20.0

	offHoursRatioThreshold = 0.3
	offHoursWeight         = 15.0

	circularPoints = 10.0

	lowDiversityMinTxs            = 5
	lowDiversityMaxCounterparties = 2
	lowDiversityPoints            = 5.0

	highRateThreshold = 10.0
	highRateWeight    = 2.0
	highRateCap       = 20.0

	concentrationThreshold = 0.8
	concentrationWeight    = 15.0
)

// Scorer holds no state.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoreUser runs the per user rules. A vector with no transactions scores 0 with no
// reasons.
func (s *Scorer) ScoreUser(f models.UserFeatures) models.ScoreResult {
	r := newResult()
	if f.TransactionCount == 0 {
		return r.build()
	}

	if f.HighVelocityPeriods > 0 {
		r.add(RuleHighVelocity,
			math.Min(float64(f.HighVelocityPeriods)*velocityPointsPerPeriod, velocityCap),
			fmt.Sprintf("%d rapid transaction periods", f.HighVelocityPeriods))
	}

	if f.AmountOutliers > 0 {
		r.add(RuleAmountOutliers,
			math.Min(float64(f.AmountOutliers)*outlierPointsPerTx, outlierCap),
			fmt.Sprintf("%d transactions with unusual amounts", f.AmountOutliers))
	}

	if f.RoundAmountRatio > roundRatioThreshold {
		r.add(RuleRoundAmounts,
			f.RoundAmountRatio*roundWeight,
			fmt.Sprintf("%s of amounts are round numbers", percent(f.RoundAmountRatio)))
	}

	if f.LargeTransactionCount > 0 {
		share := float64(f.LargeTransactionCount) / float64(f.TransactionCount)
		r.add(RuleLargeTransactions,
			math.Min(share*largeWeight, largeCap),
			fmt.Sprintf("%d very large transactions", f.LargeTransactionCount))
	}

	if f.OffHoursRatio > offHoursRatioThreshold {
		r.add(RuleOffHours,
			f.OffHoursRatio*offHoursWeight,
			fmt.Sprintf("%s of transactions during off hours", percent(f.OffHoursRatio)))
	}

	if f.CircularTransactions {
		r.add(RuleCircularTransactions, circularPoints,
			"Potential circular transaction patterns detected")
	}

	if f.TransactionCount > lowDiversityMinTxs && f.UniqueCounterparties <= lowDiversityMaxCounterparties {
		r.add(RuleLowDiversity, lowDiversityPoints,
			fmt.Sprintf("Only %d unique counterparties", f.UniqueCounterparties))
	}

	return r.build()
}

// ScoreBatch runs the batch level rules.
func (s *Scorer) ScoreBatch(f models.BatchFeatures) models.ScoreResult {
	r := newResult()

	if f.TransactionRate > highRateThreshold {
		r.add(RuleHighRate,
			math.Min((f.TransactionRate-highRateThreshold)*highRateWeight, highRateCap),
			fmt.Sprintf("High transaction rate: %.1f per hour", f.TransactionRate))
	}

	if f.VolumeConcentration > concentrationThreshold {
		r.add(RuleConcentration,
			f.VolumeConcentration*concentrationWeight,
			fmt.Sprintf("High volume concentration: %s", percent(f.VolumeConcentration)))
	}

	return r.build()
}

type result struct {
	score   float64
	reasons map[string]string
}

func newResult() *result {
	return &result{reasons: make(map[string]string)}
}

func (r *result) add(rule string, points float64, reason string) {
	r.score += points
	r.reasons[rule] = reason
}

func (r *result) build() models.ScoreResult {
	score := Clamp(r.score)
	return models.ScoreResult{
		FraudScore: score,
		RiskLevel:  models.RiskLevelFromScore(score),
		Reasons:    r.reasons,
	}
}

// Clamp bounds a raw score to [0, MaxScore].
func Clamp(score float64) float64 {
	return math.Max(0, math.Min(score, MaxScore))
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
