// Package normalizer turns raw transaction records into a time ordered models.Table.
// It is the only place where amounts and timestamps are coerced; anything it cannot
// coerce aborts the whole batch.
package normalizer

import (
	// Go Internal Packages
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strings"
	"time"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"

	// External Packages
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	errMissing    = errors.New("value is missing")
	errNegative   = errors.New("amount must not be negative")
	errOutOfRange = errors.New("timestamp out of range")
	nanosPerMilli = decimal.NewFromInt(int64(time.Millisecond))
	maxUnixNanos  = decimal.NewFromInt(math.MaxInt64)
	minUnixNanos  = decimal.NewFromInt(math.MinInt64)
)

// Normalize coerces every record and returns them sorted by creation time. The sort is
// stable so records sharing a timestamp keep their input order.
func Normalize(txs []models.Transaction) (*models.Table, error) {
	out := make([]models.NormalizedTransaction, 0, len(txs))
	for i, tx := range txs {
		createdAt, err := ParseTimestamp(tx.CreatedAt)
		if err != nil {
			return nil, errors.MalformedRecordErr(i, "createdAt", err)
		}
		amount, err := ParseAmount(tx.Amount)
		if err != nil {
			return nil, errors.MalformedRecordErr(i, "amount", err)
		}

		out = append(out, models.NormalizedTransaction{
			ID:           tx.ID,
			CreatedAt:    createdAt,
			Amount:       amount,
			SenderID:     tx.SenderID,
			ReceiverID:   tx.ReceiverID,
			Owner:        tx.Owner,
			Type:         tx.Type,
			Status:       tx.Status,
			GiftID:       tx.GiftID,
			LivestreamID: tx.LivestreamID,
			TxHash:       tx.TxHash,
		})
	}

	slices.SortStableFunc(out, func(a, b models.NormalizedTransaction) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return models.NewTable(out), nil
}

// ParseAmount coerces a raw amount into a non-negative decimal.
func ParseAmount(v any) (decimal.Decimal, error) {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegative
	}
	return d, nil
}

// ParseTimestamp coerces epoch milliseconds into a UTC time. Fractional milliseconds are
// kept down to the nanosecond.
func ParseTimestamp(v any) (time.Time, error) {
	ms, err := toDecimal(v)
	if err != nil {
		return time.Time{}, err
	}

	nanos := ms.Mul(nanosPerMilli).Truncate(0)
	if nanos.GreaterThan(maxUnixNanos) || nanos.LessThan(minUnixNanos) {
		return time.Time{}, errOutOfRange
	}
	return time.Unix(0, nanos.IntPart()).UTC(), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, errMissing
	case decimal.Decimal:
		return val, nil
	case json.Number:
		return parseDecimalString(val.String())
	case string:
		return parseDecimalString(val)
	case primitive.Decimal128:
		return parseDecimalString(val.String())
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, fmt.Errorf("invalid number %v", val)
		}
		return decimal.NewFromFloat(val), nil
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Zero, fmt.Errorf("invalid number %v", val)
		}
		return decimal.NewFromFloat32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(val), 0), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported type %T", v)
	}
}

func parseDecimalString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errMissing
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse %q as a number", s)
	}
	return d, nil
}
