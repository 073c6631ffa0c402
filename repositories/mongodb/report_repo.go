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
)

type ReportRepository struct {
	client     *mongo.Client
	database   string
	collection string
	now        func() time.Time
}

func NewReportRepository(client *mongo.Client, database, collection string) *ReportRepository {
	return &ReportRepository{client: client, database: database, collection: collection, now: time.Now}
}

// ReportDocument converts a report into the document stored for it. The report goes
// through its JSON form so decimals are kept as exact strings.
func ReportDocument(report *models.Report, generatedAt time.Time) (bson.M, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err = bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, err
	}
	doc["generated_at"] = generatedAt.UTC()
	return doc, nil
}

// SaveReport stores one evaluation report.
func (r *ReportRepository) SaveReport(ctx context.Context, report *models.Report) error {
	doc, err := ReportDocument(report, r.now())
	if err != nil {
		return errors.E(errors.Internal, "encode report", err)
	}

	collection := r.client.Database(r.database).Collection(r.collection)
	if _, err = collection.InsertOne(ctx, doc); err != nil {
		return errors.E(errors.Internal, "insert report", err)
	}
	return nil
}
