package features

import (
	// Go Internal Packages
	"sort"

	// Local Packages
	models "tx-risk/models"

	// External Packages
	"github.com/shopspring/decimal"
)

var nine = decimal.NewFromInt(9)

// UserFeatures computes the feature vector for every transaction where userID is the
// sender, the receiver or the owner. An unknown user yields a zero vector.
func (e *Extractor) UserFeatures(table *models.Table, userID string) models.UserFeatures {
	positions := table.UserPositions(userID)
	if len(positions) == 0 {
		return models.UserFeatures{}
	}

	txs := make([]models.NormalizedTransaction, len(positions))
	amounts := make([]decimal.Decimal, len(positions))
	for i, p := range positions {
		txs[i] = table.Transactions[p]
		amounts[i] = txs[i].Amount
	}
	n := len(txs)

	f := models.UserFeatures{
		TransactionCount: n,
		TotalAmount:      sum(amounts),
		AvgAmount:        mean(amounts),
		MedianAmount:     median(amounts),
	}
	variance := sampleVariance(amounts, f.AvgAmount)
	f.AmountStd = sqrtFloat(variance)

	if n > 1 {
		avgGap, minGap := gapSeconds(txs)
		f.AvgTimeBetweenTxns = &avgGap
		f.MinTimeBetweenTxns = &minGap
	}
	f.HighVelocityPeriods = e.highVelocityPeriods(txs)

	var round, large, offHours int
	types := make(map[string]int)
	for _, tx := range txs {
		if e.isRound(tx.Amount) {
			round++
		}
		if e.isLarge(tx.Amount) {
			large++
		}
		if e.isOffHours(tx.CreatedAt) {
			offHours++
		}
		if tx.Type != "" {
			types[tx.Type]++
		}
	}
	f.RoundAmountRatio = ratio(round, n)
	f.LargeTransactionCount = large
	f.OffHoursRatio = ratio(offHours, n)
	f.UniqueTransactionTypes = len(types)
	f.TransactionTypeEntropy = entropy(types)

	f.UniqueCounterparties, f.CircularTransactions = counterparties(txs, userID)
	f.AmountOutliers = outliers(amounts, f.AvgAmount, variance)
	return f
}

// gapSeconds returns the mean and minimum gap between consecutive transactions. txs must
// hold at least two transactions in time order.
func gapSeconds(txs []models.NormalizedTransaction) (avgGap, minGap float64) {
	total := 0.0
	for i := 1; i < len(txs); i++ {
		gap := elapsedSeconds(txs[i-1].CreatedAt, txs[i].CreatedAt)
		total += gap
		if i == 1 || gap < minGap {
			minGap = gap
		}
	}
	return total / float64(len(txs)-1), minGap
}

// highVelocityPeriods counts the start positions, all but the last, whose window holds
// enough transactions. Windows may overlap and each qualifying start is counted.
func (e *Extractor) highVelocityPeriods(txs []models.NormalizedTransaction) int {
	periods := 0
	for i := 0; i < len(txs)-1; i++ {
		start := txs[i].CreatedAt
		end := start.Add(e.thresholds.HighVelocityWindow)

		lo := sort.Search(len(txs), func(j int) bool { return !txs[j].CreatedAt.Before(start) })
		hi := sort.Search(len(txs), func(j int) bool { return txs[j].CreatedAt.After(end) })
		if hi-lo >= e.thresholds.HighVelocityCount {
			periods++
		}
	}
	return periods
}

// counterparties counts the distinct senders and receivers other than the user and
// flags a batch as circular when more than one id both sends and receives.
func counterparties(txs []models.NormalizedTransaction, userID string) (int, bool) {
	senders := make(map[string]struct{})
	receivers := make(map[string]struct{})
	for _, tx := range txs {
		if tx.SenderID != "" {
			senders[tx.SenderID] = struct{}{}
		}
		if tx.ReceiverID != "" {
			receivers[tx.ReceiverID] = struct{}{}
		}
	}

	union := make(map[string]struct{}, len(senders)+len(receivers))
	both := 0
	for id := range senders {
		union[id] = struct{}{}
		if _, ok := receivers[id]; ok {
			both++
		}
	}
	for id := range receivers {
		union[id] = struct{}{}
	}
	delete(union, userID)

	return len(union), both > 1
}

// outliers counts the amounts more than three standard deviations from the mean. The
// test is done on squares in decimal, so it holds for amounts beyond the float64 range.
func outliers(amounts []decimal.Decimal, avg, variance decimal.Decimal) int {
	if !variance.IsPositive() {
		return 0
	}
	limit := variance.Mul(nine)

	count := 0
	for _, a := range amounts {
		d := a.Sub(avg)
		if d.Mul(d).GreaterThan(limit) {
			count++
		}
	}
	return count
}
