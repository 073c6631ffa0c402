package redis

import (
	// Go Internal Packages
	"context"

	// External Packages
	"github.com/redis/go-redis/v9"
)

// Connect connects to the redis db and returns the client.
func Connect(ctx context.Context, uri, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: password,
		DB:       0,
	})

	if pingErr := rdb.Ping(ctx).Err(); pingErr != nil {
		_ = rdb.Close()
		return nil, pingErr
	}
	return rdb, nil
}
