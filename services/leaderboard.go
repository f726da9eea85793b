package services

import (
	"context"
	"log"
	"time"

	"studyhub/db"
	"studyhub/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// leaderboardKey is the Redis sorted set holding user points.
	leaderboardKey = "leaderboard:points"

	// timestampDivisor keeps the timestamp component of a composite
	// score small enough not to disturb the integer points part.
	timestampDivisor = 10_000_000_000_000_000_000
)

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName"`
	Points      int    `json:"points"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// composePoints folds a timestamp into the score so that of two users
// on the same point total, the one who got there first ranks higher.
func composePoints(points int, timestamp int64) float64 {
	return float64(points) + (1.0 - float64(timestamp)/timestampDivisor)
}

// basePoints recovers the integer point total from a composite score.
func basePoints(composite float64) int {
	return int(composite)
}

// UpdateLeaderboardEntry pushes a user's current point total into the
// Redis leaderboard. Best-effort: when Redis is down the Mongo
// fallback in TopUsers still serves correct results.
func UpdateLeaderboardEntry(ctx context.Context, user *models.User) {
	if db.RedisClient == nil {
		return
	}
	err := db.RedisClient.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  composePoints(user.Points, time.Now().UnixNano()),
		Member: user.ID.Hex(),
	}).Err()
	if err != nil {
		log.Printf("leaderboard: failed to update entry for %s: %v", user.ID.Hex(), err)
	}
}

// TopUsers returns the highest-ranked users. It reads the Redis sorted
// set when available and falls back to a Mongo sort on points.
func TopUsers(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if db.RedisClient != nil {
		entries, err := topUsersFromRedis(ctx, limit)
		if err == nil {
			return entries, nil
		}
		log.Printf("leaderboard: redis read failed, falling back to mongo: %v", err)
	}
	return topUsersFromMongo(ctx, limit)
}

func topUsersFromRedis(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := db.RedisClient.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Member.(string))
	}
	users, err := usersByHexIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		id := row.Member.(string)
		entry := LeaderboardEntry{
			Rank:   i + 1,
			UserID: id,
			Points: basePoints(row.Score),
		}
		if u, ok := users[id]; ok {
			entry.Username = u.Username
			entry.DisplayName = u.DisplayName
			entry.AvatarURL = u.AvatarURL
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func topUsersFromMongo(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	cursor, err := db.Users().Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "points", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      u.ID.Hex(),
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Points:      u.Points,
			AvatarURL:   u.AvatarURL,
		})
	}
	return entries, nil
}

// RebuildLeaderboard repopulates the Redis sorted set from Mongo. Run
// periodically so evictions or missed best-effort updates heal.
func RebuildLeaderboard(ctx context.Context) error {
	if db.RedisClient == nil {
		return nil
	}

	cursor, err := db.Users().Find(ctx, bson.M{"points": bson.M{"$gt": 0}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	pipe := db.RedisClient.Pipeline()
	timestamp := time.Now().UnixNano()
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			continue
		}
		pipe.ZAdd(ctx, leaderboardKey, redis.Z{
			Score:  composePoints(u.Points, timestamp),
			Member: u.ID.Hex(),
		})
		timestamp++
	}
	_, err = pipe.Exec(ctx)
	return err
}

// usersByHexIDs loads a batch of users keyed by their hex object id.
func usersByHexIDs(ctx context.Context, hexIDs []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(hexIDs))
	if len(hexIDs) == 0 {
		return out, nil
	}

	ids := make([]interface{}, 0, len(hexIDs))
	for _, h := range hexIDs {
		if oid, err := primitive.ObjectIDFromHex(h); err == nil {
			ids = append(ids, oid)
		}
	}

	cursor, err := db.Users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID.Hex()] = u
	}
	return out, nil
}
