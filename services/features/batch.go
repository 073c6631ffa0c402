package features

import (
	// Go Internal Packages
	"math"

	// Local Packages
	models "tx-risk/models"

	// External Packages
	"github.com/shopspring/decimal"
)

// minSpanHours keeps the rate finite for batches that span (almost) no time.
const minSpanHours = 0.01

// BatchFeatures computes the feature vector over the whole table.
func (e *Extractor) BatchFeatures(table *models.Table) models.BatchFeatures {
	f := models.BatchFeatures{
		TotalTransactions:  table.Len(),
		TotalVolume:        decimal.Zero,
		AvgTransactionSize: decimal.Zero,
	}

	users := make(map[string]struct{})
	for _, id := range table.Senders() {
		users[id] = struct{}{}
	}
	for _, id := range table.Receivers() {
		users[id] = struct{}{}
	}
	f.UniqueUsers = len(users)

	if table.Len() == 0 {
		return f
	}

	amounts := make([]decimal.Decimal, table.Len())
	for i, tx := range table.Transactions {
		amounts[i] = tx.Amount
	}
	f.TotalVolume = sum(amounts)
	f.AvgTransactionSize = mean(amounts)

	first := table.Transactions[0].CreatedAt
	last := table.Transactions[table.Len()-1].CreatedAt
	f.TimeSpanHours = elapsedSeconds(first, last) / 3600
	f.TransactionRate = float64(table.Len()) / math.Max(f.TimeSpanHours, minSpanHours)

	f.VolumeConcentration = volumeConcentration(table)
	return f
}

// volumeConcentration is the share of the sender volume held by the largest sender.
func volumeConcentration(table *models.Table) float64 {
	largest, total := decimal.Zero, decimal.Zero
	for _, sender := range table.Senders() {
		volume := decimal.Zero
		for _, p := range table.SenderPositions(sender) {
			volume = volume.Add(table.Transactions[p].Amount)
		}
		if volume.GreaterThan(largest) {
			largest = volume
		}
		total = total.Add(volume)
	}

	if !total.IsPositive() {
		return 0
	}
	return largest.Div(total).InexactFloat64()
}
