package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"

	// External Packages
	"github.com/redis/go-redis/v9"
)

// Key joins the key prefix and the parts with ':'.
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		return strings.Join(parts, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// ReportCache keeps the latest report in redis: a hash of user scores, a hash of user risk
// levels and the full report as JSON. A zero ttl keeps the keys forever.
type ReportCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, prefix string, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, prefix: prefix, ttl: ttl}
}

// ScoreFields returns the hash fields for the per user scores and risk levels.
func ScoreFields(report *models.Report) (scores, levels map[string]any) {
	scores = make(map[string]any, len(report.Users))
	levels = make(map[string]any, len(report.Users))
	for userID, res := range report.Users {
		scores[userID] = strconv.FormatFloat(res.FraudScore, 'f', -1, 64)
		levels[userID] = res.RiskLevel.String()
	}
	return scores, levels
}

// SaveReport replaces the cached report atomically.
func (c *ReportCache) SaveReport(ctx context.Context, report *models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return errors.E(errors.Internal, "encode report", err)
	}

	scoresKey := Key(c.prefix, "scores")
	levelsKey := Key(c.prefix, "levels")
	reportKey := Key(c.prefix, "report")
	scores, levels := ScoreFields(report)

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, scoresKey, levelsKey)
		if len(scores) > 0 {
			pipe.HSet(ctx, scoresKey, scores)
			pipe.HSet(ctx, levelsKey, levels)
		}
		pipe.Set(ctx, reportKey, data, c.ttl)
		if c.ttl > 0 && len(scores) > 0 {
			pipe.Expire(ctx, scoresKey, c.ttl)
			pipe.Expire(ctx, levelsKey, c.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.E(errors.Internal, "cache report", err)
	}
	return nil
}
