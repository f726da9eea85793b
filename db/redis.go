package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client used for the leaderboard and
// rate limiting. Redis is optional; callers must tolerate a nil client.
func InitRedis(addr, password string, database int) error {
	opt := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	return nil
}
