package config

import (
	// Go Internal Packages
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	// Local Packages
	errors "tx-risk/errors"
	features "tx-risk/services/features"

	// External Packages
	"github.com/shopspring/decimal"
)

var DefaultConfig = []byte(`
application: "tx-risk"

logger:
  level: "info"

is_prod_mode: false

thresholds:
  high_velocity_window_seconds: 300
  high_velocity_count: 3
  large_amount_threshold: "1000000000"
  round_amount_threshold: "1000000"
  off_hours_start_hour: 22
  off_hours_end_hour: 6
  timezone: "UTC"

source:
  kind: "file"
  path: "-"
  since: "24h"

output:
  format: "text"

sinks: []

mongo:
  uri: "mongodb://localhost:27017"
  database: "txrisk"
  transactions_collection: "transactions"
  reports_collection: "risk_reports"

redis:
  uri: "localhost:6379"
  password: ""
  key_prefix: "txrisk"
  report_ttl_minutes: 60

kafka:
  brokers:
    - "localhost:9092"
  topic: "transactions"
  consumer_name: "tx-risk"
  records_per_poll: 5000
  max_records: 100000
  idle_timeout_seconds: 5
  metrics_namespace: "txrisk"
  dead_letter_queue: true
`)

// Source kinds.
const (
	SourceFile  = "file"
	SourceMongo = "mongo"
	SourceKafka = "kafka"
)

// Report sinks.
const (
	SinkRedis = "redis"
	SinkMongo = "mongo"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Application string     `koanf:"application"`
	Logger      Logger     `koanf:"logger"`
	IsProdMode  bool       `koanf:"is_prod_mode"`
	Thresholds  Thresholds `koanf:"thresholds"`
	Source      Source     `koanf:"source"`
	Output      Output     `koanf:"output"`
	Sinks       []string   `koanf:"sinks"`
	Mongo       Mongo      `koanf:"mongo"`
	Redis       Redis      `koanf:"redis"`
	Kafka       Kafka      `koanf:"kafka"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Thresholds struct {
	HighVelocityWindowSeconds int    `koanf:"high_velocity_window_seconds"`
	HighVelocityCount         int    `koanf:"high_velocity_count"`
	LargeAmountThreshold      string `koanf:"large_amount_threshold"`
	RoundAmountThreshold      string `koanf:"round_amount_threshold"`
	OffHoursStartHour         int    `koanf:"off_hours_start_hour"`
	OffHoursEndHour           int    `koanf:"off_hours_end_hour"`
	Timezone                  string `koanf:"timezone"`
}

// Source selects where a batch is read from. Path "-" reads stdin. Since bounds the mongo
// query to recent transactions, 0 reads the whole collection.
type Source struct {
	Kind  string        `koanf:"kind"`
	Path  string        `koanf:"path"`
	Since time.Duration `koanf:"since"`
}

type Output struct {
	Format string `koanf:"format"`
}

type Mongo struct {
	URI                    string `koanf:"uri"`
	Database               string `koanf:"database"`
	TransactionsCollection string `koanf:"transactions_collection"`
	ReportsCollection      string `koanf:"reports_collection"`
}

type Redis struct {
	URI              string `koanf:"uri"`
	Password         string `koanf:"password"`
	KeyPrefix        string `koanf:"key_prefix"`
	ReportTTLMinutes int    `koanf:"report_ttl_minutes"`
}

type Kafka struct {
	Brokers            []string `koanf:"brokers"`
	Topic              string   `koanf:"topic"`
	ConsumerName       string   `koanf:"consumer_name"`
	RecordsPerPoll     int      `koanf:"records_per_poll"`
	MaxRecords         int      `koanf:"max_records"`
	IdleTimeoutSeconds int      `koanf:"idle_timeout_seconds"`
	MetricsNamespace   string   `koanf:"metrics_namespace"`
	DeadLetterQueue    bool     `koanf:"dead_letter_queue"`
}

// LoadSecrets overrides connection settings with the values found in the environment.
func (c *Config) LoadSecrets() {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}
	if uri := os.Getenv("REDIS_URI"); uri != "" {
		c.Redis.URI = uri
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	if prod, err := strconv.ParseBool(os.Getenv("IS_PROD_MODE")); err == nil {
		c.IsProdMode = prod
	}
}

// UsesMongo reports whether the source or one of the sinks needs a mongo connection.
func (c *Config) UsesMongo() bool {
	return c.Source.Kind == SourceMongo || slices.Contains(c.Sinks, SinkMongo)
}

// UsesRedis reports whether a sink or the kafka dead letter queue needs a redis connection.
func (c *Config) UsesRedis() bool {
	dlq := c.Source.Kind == SourceKafka && c.Kafka.DeadLetterQueue
	return dlq || slices.Contains(c.Sinks, SinkRedis)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}

	c.validateThresholds(ve)

	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			ve.Add("source.path", "cannot be empty")
		}
	case SourceMongo:
		if c.Source.Since < 0 {
			ve.Add("source.since", "cannot be negative")
		}
	case SourceKafka:
	default:
		ve.Add("source.kind", "must be one of file, mongo, kafka")
	}

	if c.Output.Format != FormatText && c.Output.Format != FormatJSON {
		ve.Add("output.format", "must be one of text, json")
	}
	for _, sink := range c.Sinks {
		if sink != SinkRedis && sink != SinkMongo {
			ve.Add("sinks", "unknown sink "+strconv.Quote(sink))
		}
	}

	if c.UsesMongo() {
		if c.Mongo.URI == "" {
			ve.Add("mongo.uri", "cannot be empty")
		}
		if c.Mongo.Database == "" {
			ve.Add("mongo.database", "cannot be empty")
		}
	}
	if c.UsesRedis() {
		if c.Redis.URI == "" {
			ve.Add("redis.uri", "cannot be empty")
		}
		if c.Redis.ReportTTLMinutes < 0 {
			ve.Add("redis.report_ttl_minutes", "cannot be negative")
		}
	}
	if c.Source.Kind == SourceKafka {
		if len(c.Kafka.Brokers) == 0 {
			ve.Add("kafka.brokers", "cannot be empty")
		}
		if c.Kafka.Topic == "" {
			ve.Add("kafka.topic", "cannot be empty")
		}
		if c.Kafka.ConsumerName == "" {
			ve.Add("kafka.consumer_name", "cannot be empty")
		}
		if c.Kafka.RecordsPerPoll <= 0 {
			ve.Add("kafka.records_per_poll", "must be positive")
		}
		if c.Kafka.MaxRecords <= 0 {
			ve.Add("kafka.max_records", "must be positive")
		}
		if c.Kafka.IdleTimeoutSeconds <= 0 {
			ve.Add("kafka.idle_timeout_seconds", "must be positive")
		}
	}

	return ve.Err()
}

func (c *Config) validateThresholds(ve *errors.ValidationErrors) {
	t := c.Thresholds

	if t.HighVelocityWindowSeconds <= 0 {
		ve.Add("thresholds.high_velocity_window_seconds", "must be positive")
	}
	if t.HighVelocityCount < 1 {
		ve.Add("thresholds.high_velocity_count", "must be at least 1")
	}
	if d, err := decimal.NewFromString(t.LargeAmountThreshold); err != nil || !d.IsPositive() {
		ve.Add("thresholds.large_amount_threshold", "must be a positive decimal")
	}
	if d, err := decimal.NewFromString(t.RoundAmountThreshold); err != nil || !d.IsPositive() {
		ve.Add("thresholds.round_amount_threshold", "must be a positive decimal")
	}
	if t.OffHoursStartHour < 0 || t.OffHoursStartHour > 23 {
		ve.Add("thresholds.off_hours_start_hour", "must be between 0 and 23")
	}
	if t.OffHoursEndHour < 0 || t.OffHoursEndHour > 23 {
		ve.Add("thresholds.off_hours_end_hour", "must be between 0 and 23")
	}
	if t.OffHoursStartHour == t.OffHoursEndHour {
		ve.Add("thresholds.off_hours_end_hour", "must differ from off_hours_start_hour")
	}
	if _, err := time.LoadLocation(t.Timezone); err != nil {
		ve.Add("thresholds.timezone", "unknown time zone")
	}
}

// FeatureThresholds converts the thresholds section into the extractor's thresholds.
func (c *Config) FeatureThresholds() (features.Thresholds, error) {
	t := c.Thresholds

	large, err := decimal.NewFromString(t.LargeAmountThreshold)
	if err != nil {
		return features.Thresholds{}, errors.E(errors.Invalid, "thresholds.large_amount_threshold", err)
	}
	round, err := decimal.NewFromString(t.RoundAmountThreshold)
	if err != nil {
		return features.Thresholds{}, errors.E(errors.Invalid, "thresholds.round_amount_threshold", err)
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return features.Thresholds{}, errors.E(errors.Invalid, "thresholds.timezone", err)
	}

	return features.Thresholds{
		HighVelocityWindow: time.Duration(t.HighVelocityWindowSeconds) * time.Second,
		HighVelocityCount:  t.HighVelocityCount,
		LargeAmount:        large,
		RoundAmount:        round,
		OffHoursStartHour:  t.OffHoursStartHour,
		OffHoursEndHour:    t.OffHoursEndHour,
		Location:           loc,
	}, nil
}
