package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"time"

	// Local Packages
	models "tx-risk/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers        []string
	Name           string
	Topic          string
	RecordsPerPoll int
	MaxRecords     int
	IdleTimeout    time.Duration
}

// Client is the part of *kgo.Client the consumer uses.
type Client interface {
	PollRecords(ctx context.Context, maxPollRecords int) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
	AllowRebalance()
	Close()
}

// Consumer reads one batch of transaction records from a topic. Offsets are only committed
// through Commit, after the batch has been handled. Rebalances are held back from the first
// poll until Commit or Close, so the partitions being committed are still owned.
type Consumer struct {
	Client  Client
	Config  *ConsumerConfig
	Logger  *zap.Logger
	drained []*kgo.Record
}

func NewTxConsumer(conf *ConsumerConfig, metrics *kprom.Metrics, logger *zap.Logger) (*Consumer, error) {
	c := &Consumer{Config: conf, Logger: logger}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ConsumerGroup(conf.Name),
		kgo.ConsumeTopics(conf.Topic),
		kgo.WithHooks(metrics),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	c.Client = client
	return c, nil
}

// Drain polls until a poll returns nothing within the idle timeout or MaxRecords have been
// read, and returns what was read as one batch.
func (c *Consumer) Drain(ctx context.Context) ([]models.Record, error) {
	c.drained = c.drained[:0]

	for len(c.drained) < c.Config.MaxRecords {
		want := min(c.Config.RecordsPerPoll, c.Config.MaxRecords-len(c.drained))

		pollCtx, cancel := context.WithTimeout(ctx, c.Config.IdleTimeout)
		fetches := c.Client.PollRecords(pollCtx, want)
		cancel()

		if fetches.IsClientClosed() {
			return nil, errors.New("kafka client closed")
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := fetchErr(fetches); err != nil {
			return nil, err
		}

		batch := fetches.Records()
		if len(batch) == 0 {
			break
		}
		c.drained = append(c.drained, batch...)
		c.Logger.Debug("polled records", zap.String("topic", c.Config.Topic), zap.Int("count", len(batch)))
	}

	records := make([]models.Record, len(c.drained))
	for idx, record := range c.drained {
		records[idx] = ToRecord(record)
	}
	c.Logger.Info("drained topic", zap.String("topic", c.Config.Topic), zap.Int("records", len(records)))
	return records, nil
}

// Commit commits the offsets of the records returned by the last Drain and lets a pending
// rebalance go ahead.
func (c *Consumer) Commit(ctx context.Context) error {
	defer c.Client.AllowRebalance()
	if len(c.drained) == 0 {
		return nil
	}
	return c.Client.CommitRecords(ctx, c.drained...)
}

func (c *Consumer) Close() {
	c.Client.AllowRebalance()
	c.Client.Close()
}

// fetchErr returns the first fetch error that is not the idle timeout expiring.
func fetchErr(fetches kgo.Fetches) error {
	var first error
	fetches.EachError(func(_ string, _ int32, err error) {
		if first != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return
		}
		first = err
	})
	return first
}

// ToRecord copies the parts of a kafka record the processor needs.
func ToRecord(record *kgo.Record) models.Record {
	return models.Record{
		Key:       record.Key,
		Value:     record.Value,
		Topic:     record.Topic,
		Partition: record.Partition,
		Offset:    record.Offset,
	}
}
