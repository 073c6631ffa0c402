package normalizer

import (
	// Go Internal Packages
	"bytes"
	"encoding/json"
	"io"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"
)

// DecodeTransactions reads a JSON array of transactions. Numbers are decoded as json.Number
// so large amounts never pass through float64.
func DecodeTransactions(r io.Reader) ([]models.Transaction, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.InvalidInputErr(err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errors.InvalidInputErr(errors.New("expected a JSON array of transactions"))
	}

	var txs []models.Transaction
	if err := decode(raw, &txs); err != nil {
		return nil, errors.InvalidInputErr(err)
	}
	return txs, nil
}

// DecodeTransaction reads a single JSON transaction, as carried in a Kafka record value.
func DecodeTransaction(data []byte) (models.Transaction, error) {
	var tx models.Transaction
	if err := decode(data, &tx); err != nil {
		return models.Transaction{}, errors.InvalidInputErr(err)
	}
	return tx, nil
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
