package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis carries assignment-change notifications between admin sessions.
// It is optional: when unreachable the server still runs, without live push.
var Redis *redis.Client

func ConnectRedis() {
	addr := envOrDefault("REDIS_ADDR", "127.0.0.1:6379")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envOrDefault("REDIS_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unreachable at %s (%v); assignment change push disabled", addr, err)
		return
	}

	Redis = client
	log.Printf("✅ Redis connected at %s", addr)
}
