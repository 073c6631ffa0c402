package main

import (
	// Go Internal Packages
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	// Local Packages
	config "tx-risk/config"
	errors "tx-risk/errors"
	helpers "tx-risk/helpers"
	kafka "tx-risk/kafka"
	models "tx-risk/models"
	mongodb "tx-risk/repositories/mongodb"
	redis "tx-risk/repositories/redis"
	evaluator "tx-risk/services/evaluator"
	features "tx-risk/services/features"
	normalizer "tx-risk/services/normalizer"
	txpsr "tx-risk/services/processors"
	reporting "tx-risk/services/reporting"
	scoring "tx-risk/services/scoring"
	utils "tx-risk/utils"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

var (
	configPath = kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()

	evaluateCmd = kingpin.Command("evaluate", "Score one batch of transactions for fraud risk").Default()
	sourceKind  = evaluateCmd.Flag("source", "Where to read the batch from").Enum(config.SourceFile, config.SourceMongo, config.SourceKafka)
	inputPath   = evaluateCmd.Flag("input", "JSON file with the transactions, - for stdin").Short('i').String()
	since       = evaluateCmd.Flag("since", "Only read mongo transactions newer than this, 0 for all").String()
	format      = evaluateCmd.Flag("format", "Report format").Enum(config.FormatText, config.FormatJSON)
	sinks       = evaluateCmd.Flag("sink", "Also save the report to this sink, repeatable").Enums(config.SinkRedis, config.SinkMongo)

	seedCmd   = kingpin.Command("seed", "Insert a JSON transactions file into the mongo collection")
	seedInput = seedCmd.Flag("input", "JSON file with the transactions, - for stdin").Short('i').Required().String()
)

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() (*koanf.Koanf, string) {
	command := kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k, command
}

// applyFlags lets the evaluate flags win over the config file.
func applyFlags(conf *config.Config) error {
	if *sourceKind != "" {
		conf.Source.Kind = *sourceKind
	}
	if *inputPath != "" {
		conf.Source.Path = *inputPath
	}
	if *since != "" {
		d, err := time.ParseDuration(*since)
		if err != nil {
			return errors.E(errors.Invalid, "--since", err)
		}
		conf.Source.Since = d
	}
	if *format != "" {
		conf.Output.Format = *format
	}
	if len(*sinks) > 0 {
		conf.Sinks = *sinks
	}
	return nil
}

func newLogger(conf *config.Config) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(conf.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = conf.Application
	// stdout carries the report
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	return logger
}

func main() {
	k, command := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appKonf.LoadSecrets()
	if err = applyFlags(&appKonf); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	// Validate the config loaded
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", errors.ValidationFailedErr(err))
	}

	logger := newLogger(&appKonf)
	if !appKonf.IsProdMode {
		logger.Debug("loaded config", zap.Strings("keys", k.Keys()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	switch command {
	case seedCmd.FullCommand():
		err = runSeed(ctx, &appKonf, logger, *seedInput)
	default:
		err = runEvaluate(ctx, &appKonf, logger)
	}

	stop()
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func runEvaluate(ctx context.Context, conf *config.Config, logger *zap.Logger) error {
	thresholds, err := conf.FeatureThresholds()
	if err != nil {
		return err
	}
	eval := evaluator.NewEvaluator(features.NewExtractor(thresholds), scoring.NewScorer())

	logger.Info("evaluating batch",
		zap.String("source", conf.Source.Kind),
		zap.String("sinks", utils.JoinSorted(conf.Sinks, ",")),
		zap.String("timezone", thresholds.Location.String()),
	)

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	var (
		txRepo      *mongodb.TxRepository
		reportSinks []txpsr.ReportSink
		dlQueue     txpsr.DeadLetterQueue
	)

	// Mongo Connection
	if conf.UsesMongo() {
		mongoClient, err := mongodb.Connect(ctx, conf.Mongo.URI, conf.Application)
		if err != nil {
			return errors.E(errors.Internal, "cannot create mongo client", err)
		}
		closers = append(closers, func() { _ = mongoClient.Disconnect(context.Background()) })

		txRepo = mongodb.NewTxRepository(mongoClient, conf.Mongo.Database, conf.Mongo.TransactionsCollection)
		if slices.Contains(conf.Sinks, config.SinkMongo) {
			reportSinks = append(reportSinks, mongodb.NewReportRepository(mongoClient, conf.Mongo.Database, conf.Mongo.ReportsCollection))
		}
	}

	// Redis Connection
	if conf.UsesRedis() {
		redisClient, err := redis.Connect(ctx, conf.Redis.URI, conf.Redis.Password)
		if err != nil {
			return errors.E(errors.Internal, "cannot create redis client", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		if slices.Contains(conf.Sinks, config.SinkRedis) {
			ttl := time.Duration(conf.Redis.ReportTTLMinutes) * time.Minute
			reportSinks = append(reportSinks, redis.NewReportCache(redisClient, conf.Redis.KeyPrefix, ttl))
		}
		if conf.Source.Kind == config.SourceKafka && conf.Kafka.DeadLetterQueue {
			dlQueue = redis.NewDeadLetterQueue(redisClient, logger, conf.Redis.KeyPrefix)
		}
	}

	txProcessor := txpsr.NewTxProcessor(logger, eval, dlQueue, reportSinks...)

	var report *models.Report
	switch conf.Source.Kind {
	case config.SourceMongo:
		var from time.Time
		if conf.Source.Since > 0 {
			from = time.Now().Add(-conf.Source.Since)
		}
		txs, err := txRepo.FetchTransactions(ctx, from)
		if err != nil {
			return err
		}
		report, err = txProcessor.ProcessTransactions(ctx, txs)
		if err != nil {
			return err
		}
	case config.SourceKafka:
		report, err = drainKafka(ctx, conf, logger, txProcessor)
		if err != nil {
			return err
		}
	default:
		txs, err := readTransactions(conf.Source.Path)
		if err != nil {
			return err
		}
		report, err = txProcessor.ProcessTransactions(ctx, txs)
		if err != nil {
			return err
		}
	}

	if conf.Output.Format == config.FormatJSON {
		return helpers.PrintStruct(os.Stdout, report)
	}
	return helpers.PrintReport(os.Stdout, report, reporting.Summarize(report))
}

// drainKafka evaluates whatever is on the topic as one batch. Offsets are committed when the
// batch was handled or rejected into the dead letter queue, and left alone otherwise so the
// batch is read again on the next run.
func drainKafka(ctx context.Context, conf *config.Config, logger *zap.Logger, processor *txpsr.TxProcessor) (*models.Report, error) {
	metrics := kprom.NewMetrics(conf.Kafka.MetricsNamespace)
	consumerConf := &kafka.ConsumerConfig{
		Brokers:        conf.Kafka.Brokers,
		Name:           conf.Kafka.ConsumerName,
		Topic:          conf.Kafka.Topic,
		RecordsPerPoll: conf.Kafka.RecordsPerPoll,
		MaxRecords:     conf.Kafka.MaxRecords,
		IdleTimeout:    time.Duration(conf.Kafka.IdleTimeoutSeconds) * time.Second,
	}

	txConsumer, err := kafka.NewTxConsumer(consumerConf, metrics, logger)
	if err != nil {
		return nil, errors.E(errors.Internal, "cannot create transactions consumer", err)
	}
	defer txConsumer.Close()

	records, err := txConsumer.Drain(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "cannot poll records from topic", err)
	}

	report, err := processor.ProcessRecords(ctx, records)
	if err != nil && !errors.Is(errors.Invalid, err) {
		return nil, err
	}
	if commitErr := txConsumer.Commit(ctx); commitErr != nil {
		return nil, errors.E(errors.Internal, "cannot commit offsets", commitErr)
	}
	return report, err
}

func runSeed(ctx context.Context, conf *config.Config, logger *zap.Logger, path string) error {
	if conf.Mongo.URI == "" {
		return errors.EmptyParamErr("mongo.uri")
	}
	if conf.Mongo.Database == "" {
		return errors.EmptyParamErr("mongo.database")
	}

	txs, err := readTransactions(path)
	if err != nil {
		return err
	}

	mongoClient, err := mongodb.Connect(ctx, conf.Mongo.URI, conf.Application)
	if err != nil {
		return errors.E(errors.Internal, "cannot create mongo client", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	txRepo := mongodb.NewTxRepository(mongoClient, conf.Mongo.Database, conf.Mongo.TransactionsCollection)
	if err = txRepo.InsertTransactions(ctx, txs); err != nil {
		return err
	}

	logger.Info("seeded transactions",
		zap.Int("count", len(txs)),
		zap.String("collection", conf.Mongo.TransactionsCollection),
	)
	return nil
}

// readTransactions decodes a JSON transactions file, "-" reads stdin.
func readTransactions(path string) ([]models.Transaction, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.E(errors.NotExist, "cannot open transactions file", err)
		}
		defer f.Close()
		r = f
	}
	return normalizer.DecodeTransactions(r)
}
