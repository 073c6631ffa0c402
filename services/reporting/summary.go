package reporting

import (
	// Go Internal Packages
	"cmp"
	"slices"

	// Local Packages
	models "tx-risk/models"
)

// HighRiskScore is the score from which a user is listed as high risk in a summary.
const HighRiskScore = 40.0

// Summarize counts users per risk level and ranks the high risk users by score, highest
// first. Ties are ordered by user id.
func Summarize(report *models.Report) models.Summary {
	summary := models.Summary{
		TotalUsers:    len(report.Users),
		HighRiskUsers: make([]models.RankedUser, 0),
	}

	for userID, res := range report.Users {
		switch {
		case res.RiskLevel.Equal(models.RiskLevelHigh):
			summary.Distribution.High++
		case res.RiskLevel.Equal(models.RiskLevelMedium):
			summary.Distribution.Medium++
		case res.RiskLevel.Equal(models.RiskLevelLow):
			summary.Distribution.Low++
		default:
			summary.Distribution.Minimal++
		}

		if res.FraudScore >= HighRiskScore {
			summary.HighRiskUsers = append(summary.HighRiskUsers, models.RankedUser{
				UserID:      userID,
				ScoreResult: res.ScoreResult,
			})
		}
	}

	slices.SortFunc(summary.HighRiskUsers, func(a, b models.RankedUser) int {
		if c := cmp.Compare(b.FraudScore, a.FraudScore); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return summary
}
