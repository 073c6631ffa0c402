// Package features computes the behavioural feature vectors the risk rules run on:
// one per user and one for the whole batch.
package features

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/shopspring/decimal"
)

// Thresholds parametrise the feature definitions.
type Thresholds struct {
	// HighVelocityWindow is the length of the closed window [t, t+window] scanned from
	// every transaction but the last. A window holding HighVelocityCount or more
	// transactions is a high velocity period.
	HighVelocityWindow time.Duration
	HighVelocityCount  int

	LargeAmount decimal.Decimal
	RoundAmount decimal.Decimal

	// Off hours are [OffHoursStartHour, OffHoursEndHour), wrapping past midnight when
	// the start is later than the end.
	OffHoursStartHour int
	OffHoursEndHour   int

	// Location is used to derive the hour of day. Nil means UTC.
	Location *time.Location
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HighVelocityWindow: 300 * time.Second,
		HighVelocityCount:  3,
		LargeAmount:        decimal.NewFromInt(1_000_000_000),
		RoundAmount:        decimal.NewFromInt(1_000_000),
		OffHoursStartHour:  22,
		OffHoursEndHour:    6,
		Location:           time.UTC,
	}
}

// Extractor is stateless apart from its thresholds and safe to reuse across batches.
type Extractor struct {
	thresholds Thresholds
}

func NewExtractor(thresholds Thresholds) *Extractor {
	if thresholds.Location == nil {
		thresholds.Location = time.UTC
	}
	return &Extractor{thresholds: thresholds}
}

func (e *Extractor) isRound(amount decimal.Decimal) bool {
	if !e.thresholds.RoundAmount.IsPositive() {
		return false
	}
	return amount.Mod(e.thresholds.RoundAmount).IsZero()
}

func (e *Extractor) isLarge(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(e.thresholds.LargeAmount)
}

func (e *Extractor) isOffHours(t time.Time) bool {
	hour := t.In(e.thresholds.Location).Hour()
	start, end := e.thresholds.OffHoursStartHour, e.thresholds.OffHoursEndHour
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
