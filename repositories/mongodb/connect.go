package mongodb

import (
	// Go Internal Packages
	"context"
	"time"

	// External Packages
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect connects to the mongodb server and returns the client.
func Connect(ctx context.Context, uri, application string) (*mongo.Client, error) {
	timeout := time.Second * 5
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(application).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Connect is lazy, the ping surfaces an unreachable server here.
	if pingErr := client.Ping(ctx, nil); pingErr != nil {
		_ = client.Disconnect(context.Background())
		return nil, pingErr
	}
	return client, nil
}
