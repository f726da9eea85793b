package ratelimit

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Config defines a fixed-window limit for one kind of request.
type Config struct {
	Max    int
	Window time.Duration
}

// DefaultActionConfig limits how often gamified actions can be
// reported, as a basic anti-cheat measure.
func DefaultActionConfig() Config {
	return Config{Max: 30, Window: time.Minute}
}

// DefaultGenerationConfig limits AI generation requests, which are
// slow and metered upstream.
func DefaultGenerationConfig() Config {
	return Config{Max: 10, Window: time.Minute}
}

// Allow records one hit for the user/kind pair and reports whether it
// fits the window. A nil client disables limiting (fail open: rate
// limiting is protective, never load-bearing).
func Allow(c *gin.Context, rdb *redis.Client, userID, kind string, cfg Config) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate:%s:%s", kind, userID)
	ctx := c.Request.Context()

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		rdb.Expire(ctx, key, cfg.Window)
	}
	return count <= int64(cfg.Max), nil
}
