package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client backed by a singleton in-process miniredis
// instance.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		mini, err := miniredis.Run()
		if err != nil {
			panic("failed to start miniredis: " + err.Error())
		}

		redisConn = redis.NewClient(&redis.Options{
			Addr: mini.Addr(),
		})
	})

	return redisConn
}

// ClearRedis flushes every key so scenarios start with a cold cache.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
