package dbpkg

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPingTimeout = 2 * time.Second

// SetupRedis connects to Redis at addr and pings it. The client is closed when the
// ping fails.
func SetupRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}
