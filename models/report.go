package models

// ScoreResult is the outcome of running the rules over one feature vector. Reasons only
// holds the rules that fired, keyed by rule name.
type ScoreResult struct {
	FraudScore float64           `json:"fraud_score"`
	RiskLevel  RiskLevel         `json:"risk_level"`
	Reasons    map[string]string `json:"reasons"`
}

type UserResult struct {
	ScoreResult
	Features UserFeatures `json:"features"`
}

type OverallResult struct {
	ScoreResult
	Features BatchFeatures `json:"features"`
}

// Report is the result of evaluating one batch. Users only contains users with at
// least one transaction.
type Report struct {
	Users   map[string]UserResult `json:"users"`
	Overall OverallResult         `json:"overall"`
}

type RiskDistribution struct {
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Minimal int `json:"minimal"`
}

type RankedUser struct {
	UserID string `json:"user_id"`
	ScoreResult
}

// Summary is a presentation view over a Report.
type Summary struct {
	TotalUsers    int              `json:"total_users"`
	Distribution  RiskDistribution `json:"distribution"`
	HighRiskUsers []RankedUser     `json:"high_risk_users"`
}
