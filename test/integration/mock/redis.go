package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis is an in-process Redis server with a connected client.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts the shared miniredis server on first use.
func NewRedis() *Redis {
	redisOnce.Do(
		func() {
			server, err := miniredis.Run()
			if err != nil {
				panic(err)
			}
			redisMock = &Redis{
				Server: server,
				Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			}
		},
	)

	return redisMock
}

// Healthy reports whether the server answers a ping.
func (r *Redis) Healthy() bool {
	return r.Client.Ping(context.Background()).Err() == nil
}

// Clear drops every key.
func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.Background()).Err()
}
