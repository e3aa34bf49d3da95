package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates the Redis client used for profile caching.
//
// Supported env vars:
//   - REDIS_ADDR (unset disables caching)
//   - REDIS_PASSWORD (optional)
//
// Without REDIS_ADDR the returned client is nil and profile lookups skip the
// cache. A configured but unreachable Redis is fatal at startup rather than a
// silent per-request failure later.
func ConnectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Printf("REDIS_ADDR not set, profile caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     getenvDefault("REDIS_PASSWORD", ""),
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	return rdb
}
