package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartLeaderboardScheduler runs the periodic leaderboard rebuild so
// the Redis sorted set heals after evictions or missed updates.
func StartLeaderboardScheduler() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if err := RebuildLeaderboard(ctx); err != nil {
				log.Printf("[Scheduler] leaderboard rebuild failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] failed to schedule leaderboard rebuild: %v", err)
	}
}
