package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type DeadLetterQueue struct {
	client   *redis.Client
	logger   *zap.Logger
	listName string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger, prefix string) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, listName: Key(prefix, "failed-transactions")}
}

// Send appends the records of a batch that could not be evaluated to the dead letter list.
// Records that cannot be marshalled are logged and skipped.
func (r *DeadLetterQueue) Send(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	values := make([]any, 0, len(records))
	for _, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			r.logger.Error("failed to marshal record", zap.Int64("offset", record.Offset), zap.Error(err))
			continue
		}
		values = append(values, jsonData)
	}
	if len(values) == 0 {
		return nil
	}

	if err := r.client.RPush(ctx, r.listName, values...).Err(); err != nil {
		return errors.E(errors.Internal, "push to dead letter queue", err)
	}

	r.logger.Info("sent records to dead letter queue", zap.String("list", r.listName), zap.Int("count", len(values)))
	return nil
}
