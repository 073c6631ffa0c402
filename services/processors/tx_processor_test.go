package processors_test

import (
	// Go Internal Packages
	"context"
	"testing"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"
	evaluator "tx-risk/services/evaluator"
	processors "tx-risk/services/processors"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSink struct {
	reports []*models.Report
	err     error
}

func (s *fakeSink) SaveReport(_ context.Context, report *models.Report) error {
	s.reports = append(s.reports, report)
	return s.err
}

type fakeDLQ struct {
	batches [][]models.Record
	err     error
}

func (q *fakeDLQ) Send(_ context.Context, records []models.Record) error {
	q.batches = append(q.batches, records)
	return q.err
}

func record(offset int64, value string) models.Record {
	return models.Record{Topic: "transactions", Partition: 0, Offset: offset, Value: []byte(value)}
}

func validRecords() []models.Record {
	return []models.Record{
		record(0, `{"_id":"t1","createdAt":1736400000000,"amount":"1000000","senderId":"alice","receiverId":"bob","type":"gift-give"}`),
		record(1, `{"_id":"t2","createdAt":1736400060000,"amount":2000000,"senderId":"bob","receiverId":"carol","type":"gift-give"}`),
	}
}

func newProcessor(dlq processors.DeadLetterQueue, sinks ...processors.ReportSink) *processors.TxProcessor {
	return processors.NewTxProcessor(zap.NewNop(), evaluator.NewDefaultEvaluator(), dlq, sinks...)
}

func TestProcessRecords(t *testing.T) {
	sink := &fakeSink{}
	dlq := &fakeDLQ{}

	report, err := newProcessor(dlq, sink).ProcessRecords(context.Background(), validRecords())
	require.NoError(t, err)

	assert.Len(t, report.Users, 3)
	assert.Equal(t, 2, report.Overall.Features.TotalTransactions)
	require.Len(t, sink.reports, 1)
	assert.Same(t, report, sink.reports[0])
	assert.Empty(t, dlq.batches)
}

func TestProcessRecords_RejectsBatch(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		msg     string
	}{
		{
			name:    "undecodable value",
			records: append(validRecords(), record(2, `not json`)),
			msg:     "undecodable record transactions/0@2",
		},
		{
			name:    "missing amount",
			records: append(validRecords(), record(2, `{"createdAt":1736400120000}`)),
			msg:     "malformed transaction at index 2: field amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			dlq := &fakeDLQ{}

			report, err := newProcessor(dlq, sink).ProcessRecords(context.Background(), tt.records)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(errors.Invalid, err))
			assert.Contains(t, err.Error(), tt.msg)

			require.Len(t, dlq.batches, 1)
			assert.Equal(t, tt.records, dlq.batches[0])
			assert.Empty(t, sink.reports)
		})
	}
}

func TestProcessRecords_DeadLetterQueueFailure(t *testing.T) {
	dlq := &fakeDLQ{err: errors.New("redis down")}
	records := append(validRecords(), record(2, `not json`))

	_, err := newProcessor(dlq).ProcessRecords(context.Background(), records)
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Internal, err))
	assert.False(t, errors.Is(errors.Invalid, err))
}

func TestProcessRecords_WithoutDeadLetterQueue(t *testing.T) {
	_, err := newProcessor(nil).ProcessRecords(context.Background(), []models.Record{record(0, `[]`)})
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Invalid, err))
}

func TestProcessTransactions_SinkFailure(t *testing.T) {
	failing := &fakeSink{err: errors.E(errors.Internal, "insert report", errors.New("timeout"))}
	after := &fakeSink{}

	report, err := newProcessor(nil, failing, after).ProcessTransactions(context.Background(), nil)
	require.Error(t, err)
	assert.NotNil(t, report)
	assert.Empty(t, report.Users)
	assert.Len(t, failing.reports, 1)
	assert.Empty(t, after.reports)
}
