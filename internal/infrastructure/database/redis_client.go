package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates the Redis client backing the refresh-token store.
//
// Supported env vars:
//   - REDIS_ADDR (default: localhost:6379)
//   - REDIS_PASSWORD (optional)
func ConnectRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		Password: getenvDefault("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	return client
}
