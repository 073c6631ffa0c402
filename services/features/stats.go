package features

import (
	// Go Internal Packages
	"math"
	"slices"
	"time"

	// Local Packages
	utils "tx-risk/utils"

	// External Packages
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return sum(values).Div(decimal.NewFromInt(int64(len(values))))
}

func median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(two)
}

// sampleVariance uses the N-1 denominator and is 0 for fewer than two values.
func sampleVariance(values []decimal.Decimal, avg decimal.Decimal) decimal.Decimal {
	if len(values) < 2 {
		return decimal.Zero
	}
	acc := decimal.Zero
	for _, v := range values {
		d := v.Sub(avg)
		acc = acc.Add(d.Mul(d))
	}
	return acc.Div(decimal.NewFromInt(int64(len(values) - 1)))
}

// sqrtFloat is the square root of a non-negative decimal as a float64. A value too large
// for float64 is scaled down by an even power of ten before the root is taken. A root
// that still does not fit saturates at math.MaxFloat64.
func sqrtFloat(v decimal.Decimal) float64 {
	if f := v.InexactFloat64(); !math.IsInf(f, 0) {
		return math.Sqrt(f)
	}

	half := (int32(v.NumDigits()) + v.Exponent()) / 2
	root := math.Sqrt(v.Shift(-2*half).InexactFloat64()) * math.Pow10(int(half))
	if math.IsInf(root, 0) || math.IsNaN(root) {
		return math.MaxFloat64
	}
	return root
}

// elapsedSeconds is b-a in seconds. It avoids time.Duration, which saturates at about
// 292 years.
func elapsedSeconds(a, b time.Time) float64 {
	return float64(b.Unix()-a.Unix()) + float64(b.Nanosecond()-a.Nanosecond())/1e9
}

// entropy is the base 2 Shannon entropy of counts. Keys are visited in sorted order so the
// float sum is the same on every run.
func entropy(counts map[string]int) float64 {
	if len(counts) <= 1 {
		return 0
	}
	total := 0
	for _, c := range counts {
		total += c
	}

	h := 0.0
	for _, k := range utils.SortedKeys(counts) {
		p := float64(counts[k]) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

func ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
