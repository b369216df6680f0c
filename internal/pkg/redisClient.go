package client

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"whatsapp-agent/internal/config"
)

func RedisClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.GetEnv("REDIS_ADDR"),
		Password: config.GetEnvDefault("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to verify connection with Redis: %v", err)
	}

	return client
}
