package processors

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"
	normalizer "tx-risk/services/normalizer"

	// External Packages
	"go.uber.org/zap"
)

type TxEvaluator interface {
	Evaluate(txs []models.Transaction) (*models.Report, error)
}

type ReportSink interface {
	SaveReport(ctx context.Context, report *models.Report) error
}

type DeadLetterQueue interface {
	Send(ctx context.Context, records []models.Record) error
}

// TxProcessor evaluates a batch and hands the report to every sink. DLQ is optional.
type TxProcessor struct {
	Logger    *zap.Logger
	Evaluator TxEvaluator
	DLQ       DeadLetterQueue
	Sinks     []ReportSink
}

func NewTxProcessor(logger *zap.Logger, evaluator TxEvaluator, dlq DeadLetterQueue, sinks ...ReportSink) *TxProcessor {
	return &TxProcessor{Logger: logger, Evaluator: evaluator, DLQ: dlq, Sinks: sinks}
}

// ProcessTransactions evaluates txs as one batch and saves the report to the sinks. The
// report is returned even when a sink fails.
func (p *TxProcessor) ProcessTransactions(ctx context.Context, txs []models.Transaction) (*models.Report, error) {
	start := time.Now()
	report, err := p.Evaluator.Evaluate(txs)
	if err != nil {
		return nil, err
	}

	p.Logger.Info("evaluated batch",
		zap.Int("transactions", len(txs)),
		zap.Int("users", len(report.Users)),
		zap.Float64("overall_score", report.Overall.FraudScore),
		zap.Stringer("overall_risk", report.Overall.RiskLevel),
		zap.Duration("took", time.Since(start)),
	)

	for _, sink := range p.Sinks {
		if err = sink.SaveReport(ctx, report); err != nil {
			p.Logger.Error("failed to save report", zap.Error(err))
			return report, err
		}
	}
	return report, nil
}

// ProcessRecords decodes queue records and processes them as one batch. A batch with an
// undecodable or malformed record is rejected whole and sent to the dead letter queue; the
// returned error then has kind Invalid. Any other kind means the batch was not handled.
func (p *TxProcessor) ProcessRecords(ctx context.Context, records []models.Record) (*models.Report, error) {
	txs := make([]models.Transaction, 0, len(records))
	for _, record := range records {
		tx, err := normalizer.DecodeTransaction(record.Value)
		if err != nil {
			cause := errors.UndecodableRecordErr(record.Topic, record.Partition, record.Offset, err)
			return nil, p.deadLetter(ctx, records, cause)
		}
		txs = append(txs, tx)
	}

	report, err := p.ProcessTransactions(ctx, txs)
	if err != nil && report == nil && errors.Is(errors.Invalid, err) {
		return nil, p.deadLetter(ctx, records, err)
	}
	return report, err
}

func (p *TxProcessor) deadLetter(ctx context.Context, records []models.Record, cause error) error {
	p.Logger.Error("rejected batch", zap.Int("records", len(records)), zap.Error(cause))
	if p.DLQ == nil {
		return cause
	}
	if err := p.DLQ.Send(ctx, records); err != nil {
		return errors.E(errors.Internal, "send to dead letter queue", err)
	}
	return cause
}
