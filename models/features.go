package models

import (
	// External Packages
	"github.com/shopspring/decimal"
)

// UserFeatures summarises one user's involvement (as sender, receiver or owner) in a batch.
// A zero TransactionCount means there is nothing to score.
type UserFeatures struct {
	TransactionCount       int             `json:"transaction_count"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
	AvgAmount              decimal.Decimal `json:"avg_amount"`
	MedianAmount           decimal.Decimal `json:"median_amount"`
	AmountStd              float64         `json:"amount_std"`
	AvgTimeBetweenTxns     *float64        `json:"avg_time_between_txns,omitempty"`
	MinTimeBetweenTxns     *float64        `json:"min_time_between_txns,omitempty"`
	HighVelocityPeriods    int             `json:"high_velocity_periods"`
	RoundAmountRatio       float64         `json:"round_amount_ratio"`
	LargeTransactionCount  int             `json:"large_transaction_count"`
	OffHoursRatio          float64         `json:"off_hours_ratio"`
	UniqueTransactionTypes int             `json:"unique_transaction_types"`
	TransactionTypeEntropy float64         `json:"transaction_type_entropy"`
	UniqueCounterparties   int             `json:"unique_counterparties"`
	CircularTransactions   bool            `json:"circular_transactions"`
	AmountOutliers         int             `json:"amount_outliers"`
}

// BatchFeatures summarises a whole batch.
type BatchFeatures struct {
	TotalTransactions   int             `json:"total_transactions"`
	UniqueUsers         int             `json:"unique_users"`
	TotalVolume         decimal.Decimal `json:"total_volume"`
	AvgTransactionSize  decimal.Decimal `json:"avg_transaction_size"`
	TimeSpanHours       float64         `json:"time_span_hours"`
	TransactionRate     float64         `json:"transaction_rate"`
	VolumeConcentration float64         `json:"volume_concentration"`
}
