package mongodb

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"time"

	// Local Packages
	errors "tx-risk/errors"
	models "tx-risk/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TxRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewTxRepository(client *mongo.Client, database, collection string) *TxRepository {
	return &TxRepository{client: client, database: database, collection: collection}
}

// TxFilter selects transactions created at or after since. A zero since selects everything.
func TxFilter(since time.Time) bson.D {
	if since.IsZero() {
		return bson.D{}
	}
	return bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since.UnixMilli()}}}}
}

// FetchTransactions reads the raw transactions created since the given time, oldest first.
func (r *TxRepository) FetchTransactions(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	collection := r.client.Database(r.database).Collection(r.collection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := collection.Find(ctx, TxFilter(since), opts)
	if err != nil {
		return nil, errors.E(errors.Internal, "find transactions", err)
	}

	txs := make([]models.Transaction, 0)
	if err = cursor.All(ctx, &txs); err != nil {
		return nil, errors.E(errors.Internal, "decode transactions", err)
	}
	return txs, nil
}

// StoredTransaction returns tx with a numeric JSON amount turned into its exact string. The
// driver would otherwise store a json.Number beyond int64 as a lossy double.
func StoredTransaction(tx models.Transaction) models.Transaction {
	if n, ok := tx.Amount.(json.Number); ok {
		tx.Amount = n.String()
	}
	return tx
}

// InsertTransactions inserts a batch of raw transactions into database
func (r *TxRepository) InsertTransactions(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	docs := make([]any, len(txs))
	for i := range txs {
		docs[i] = StoredTransaction(txs[i])
	}

	collection := r.client.Database(r.database).Collection(r.collection)
	// Unordered so one duplicate id does not stop the rest of the batch.
	_, err := collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return errors.E(errors.Internal, "insert transactions", err)
	}
	return nil
}
