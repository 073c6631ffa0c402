// Package evaluator runs the whole pipeline over one batch: normalize, extract features
// per participant and for the batch, score, and assemble the report. Evaluate is a pure
// function of its input.
package evaluator

import (
	// Local Packages
	models "tx-risk/models"
	features "tx-risk/services/features"
	normalizer "tx-risk/services/normalizer"
	scoring "tx-risk/services/scoring"
)

type Evaluator struct {
	extractor *features.Extractor
	scorer    *scoring.Scorer
}

func NewEvaluator(extractor *features.Extractor, scorer *scoring.Scorer) *Evaluator {
	return &Evaluator{extractor: extractor, scorer: scorer}
}

// NewDefaultEvaluator uses the default thresholds.
func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(features.NewExtractor(features.DefaultThresholds()), scoring.NewScorer())
}

// Evaluate scores every participant in txs and the batch as a whole. A malformed record
// fails the whole call; no partial report is returned.
func (e *Evaluator) Evaluate(txs []models.Transaction) (*models.Report, error) {
	table, err := normalizer.Normalize(txs)
	if err != nil {
		return nil, err
	}
	return e.EvaluateTable(table), nil
}

// EvaluateTable is Evaluate for an already normalized table.
func (e *Evaluator) EvaluateTable(table *models.Table) *models.Report {
	participants := table.Participants()
	report := &models.Report{
		Users: make(map[string]models.UserResult, len(participants)),
	}

	for _, userID := range participants {
		f := e.extractor.UserFeatures(table, userID)
		if f.TransactionCount == 0 {
			continue
		}
		report.Users[userID] = models.UserResult{
			ScoreResult: e.scorer.ScoreUser(f),
			Features:    f,
		}
	}

	batch := e.extractor.BatchFeatures(table)
	report.Overall = models.OverallResult{
		ScoreResult: e.scorer.ScoreBatch(batch),
		Features:    batch,
	}
	return report
}
