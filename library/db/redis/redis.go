// Package redis wraps the shared redis client used for cross-instance counters.
package redis

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	redisLib "github.com/redis/go-redis/v9"
)

const keyPrefix = "blog-api/"

// DB is a thin wrapper around go-redis.
type DB struct {
	cli *redisLib.Client
}

// NewDB creates a new DB instance.
func NewDB(opt *redisLib.Options) *DB {
	return &DB{
		cli: redisLib.NewClient(opt),
	}
}

// IncrWithTTL increments key and sets its expiry when the key is fresh.
// Returns the counter value after the increment.
func (db *DB) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := db.cli.TxPipeline()
	incr := pipe.Incr(ctx, keyPrefix+key)
	pipe.ExpireNX(ctx, keyPrefix+key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Wrapf(err, "incr %q", key)
	}

	return incr.Val(), nil
}

// Get returns the counter value for key, zero when the key is absent.
func (db *DB) Get(ctx context.Context, key string) (int64, error) {
	val, err := db.cli.Get(ctx, keyPrefix+key).Int64()
	if err != nil {
		if errors.Is(err, redisLib.Nil) {
			return 0, nil
		}

		return 0, errors.Wrapf(err, "get %q", key)
	}

	return val, nil
}

// Close releases the underlying client.
func (db *DB) Close() error {
	return db.cli.Close()
}
