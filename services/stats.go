package services

import (
	"context"
	"log"
	"time"

	"studyhub/db"
	"studyhub/models"
	"studyhub/websocket"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActionKind identifies a trackable user action.
type ActionKind string

const (
	ActionGenerateSummary    ActionKind = "generate-summary"
	ActionGenerateFlashcards ActionKind = "generate-flashcards"
	ActionCreateMindMap      ActionKind = "create-mindmap"
	ActionGeneratePodcast    ActionKind = "generate-podcast"
	ActionQuizCorrectAnswer  ActionKind = "quiz-correct-answer"
	ActionQuizCompleted      ActionKind = "quiz-completed"
)

// actionPoints maps each action to its base point value.
var actionPoints = map[ActionKind]int{
	ActionGenerateSummary:    10,
	ActionGenerateFlashcards: 10,
	ActionCreateMindMap:      15,
	ActionGeneratePodcast:    20,
	ActionQuizCorrectAnswer:  5,
	ActionQuizCompleted:      25,
}

// actionCounters maps each action to the usage counter it increments.
var actionCounters = map[ActionKind]string{
	ActionGenerateSummary:    CounterSummaries,
	ActionGenerateFlashcards: CounterFlashcards,
	ActionCreateMindMap:      CounterMindMaps,
	ActionGeneratePodcast:    CounterPodcasts,
	ActionQuizCorrectAnswer:  CounterQuizCorrect,
	ActionQuizCompleted:      CounterQuizzesComplete,
}

// streakMilestoneBonus holds the one-time bonus awarded the day the
// streak lands exactly on the milestone value.
var streakMilestoneBonus = map[int]int{
	3: 10,
	5: 25,
	7: 50,
}

// ValidAction reports whether the given action is part of the enum.
func ValidAction(action ActionKind) bool {
	_, ok := actionPoints[action]
	return ok
}

// RecordResult is the outcome of RecordAction. Success is false when
// the user is missing or the store failed; gamification is best-effort
// and must never block the primary flow, so no error is returned.
type RecordResult struct {
	Success         bool                           `json:"success"`
	PointsAwarded   int                            `json:"pointsAwarded,omitempty"`
	NewPoints       int                            `json:"newPoints,omitempty"`
	NewStreak       int                            `json:"newStreak,omitempty"`
	StreakMilestone int                            `json:"streakMilestone,omitempty"`
	NewAchievements []models.AchievementDefinition `json:"newAchievements,omitempty"`
}

// utcDate strips the time-of-day, pinning the streak day boundary to UTC.
func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameUTCDay reports whether a and b fall on the same UTC calendar day.
func sameUTCDay(a, b time.Time) bool {
	return !a.IsZero() && utcDate(a).Equal(utcDate(b))
}

// nextStreak applies the streak rule: unchanged on a repeat action the
// same day, +1 the day after the last activity, reset to 1 otherwise.
func nextStreak(lastActivity, now time.Time, current int) int {
	if lastActivity.IsZero() {
		return 1
	}
	gap := int(utcDate(now).Sub(utcDate(lastActivity)).Hours() / 24)
	switch {
	case gap == 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// milestoneFor returns the milestone value and bonus hit by this
// invocation. Milestones only fire on the invocation that moves the
// streak onto the value, so repeats later the same day never re-award.
func milestoneFor(dateChanged bool, newStreak int) (milestone, bonus int) {
	if !dateChanged {
		return 0, 0
	}
	if b, ok := streakMilestoneBonus[newStreak]; ok {
		return newStreak, b
	}
	return 0, 0
}

// RecordAction records that a user performed a trackable action,
// updating points, usage counters and the activity streak, then
// evaluates the achievement catalog against the post-update counters.
//
// Points and counters are applied with $inc so concurrent calls never
// lose updates; the streak fields are last-write-wins, which is
// harmless because the stamped date value is idempotent per day. The
// achievement check runs against the counters returned by the update,
// so under concurrency a badge notification can be delayed to a later
// call, but the idempotent insert below guarantees it is never
// duplicated or lost.
func RecordAction(ctx context.Context, userID primitive.ObjectID, action ActionKind) RecordResult {
	basePoints, ok := actionPoints[action]
	if !ok {
		return RecordResult{}
	}

	var user models.User
	if err := db.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("stats: failed to load user %s: %v", userID.Hex(), err)
		}
		return RecordResult{}
	}

	now := time.Now().UTC()
	dateChanged := !sameUTCDay(user.LastActivityDate, now)
	newStreak := nextStreak(user.LastActivityDate, now, user.CurrentStreak)

	milestone, bonus := milestoneFor(dateChanged, newStreak)

	inc := bson.M{"points": basePoints + bonus}
	if counter, tracked := actionCounters[action]; tracked {
		inc["counters."+counter] = 1
	}
	update := bson.M{"$inc": inc}
	if dateChanged {
		update["$set"] = bson.M{
			"currentStreak":    newStreak,
			"lastActivityDate": utcDate(now),
		}
		update["$max"] = bson.M{"longestStreak": newStreak}
	}

	var updated models.User
	err := db.Users().FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("stats: failed to apply %s for user %s: %v", action, userID.Hex(), err)
		return RecordResult{}
	}

	result := RecordResult{
		Success:         true,
		PointsAwarded:   basePoints + bonus,
		NewPoints:       updated.Points,
		NewStreak:       updated.CurrentStreak,
		StreakMilestone: milestone,
	}

	result.NewAchievements = unlockNewAchievements(ctx, &updated, now)

	UpdateLeaderboardEntry(ctx, &updated)

	websocket.BroadcastGamificationEvent(models.GamificationEvent{
		Type:      "points_awarded",
		UserID:    userID.Hex(),
		Action:    string(action),
		Points:    result.PointsAwarded,
		NewPoints: updated.Points,
		Streak:    updated.CurrentStreak,
		Timestamp: now,
	})
	if milestone > 0 {
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:            "streak_milestone",
			UserID:          userID.Hex(),
			Streak:          updated.CurrentStreak,
			StreakMilestone: milestone,
			Points:          bonus,
			Timestamp:       now,
		})
	}

	return result
}

// unlockNewAchievements evaluates the catalog against the user's
// post-update counters and persists every newly crossed badge. The
// filtered $push only matches when the badge id is absent, so a badge
// is added at most once even when concurrent calls race.
func unlockNewAchievements(ctx context.Context, user *models.User, now time.Time) []models.AchievementDefinition {
	counters := make(map[string]int, len(user.Counters)+2)
	for name, v := range user.Counters {
		counters[name] = v
	}
	counters[CounterStreak] = user.CurrentStreak
	counters[CounterPoints] = user.Points

	var awarded []models.AchievementDefinition
	for _, def := range EvaluateAchievements(counters, user.AchievementIDs()) {
		res, err := db.Users().UpdateOne(
			ctx,
			bson.M{"_id": user.ID, "achievements.id": bson.M{"$ne": def.ID}},
			bson.M{"$push": bson.M{"achievements": models.UnlockedAchievement{ID: def.ID, UnlockedAt: now}}},
		)
		if err != nil {
			log.Printf("stats: failed to unlock %s for user %s: %v", def.ID, user.ID.Hex(), err)
			continue
		}
		if res.ModifiedCount == 0 {
			// A concurrent call unlocked it first.
			continue
		}

		awarded = append(awarded, def)
		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:            "achievement_unlocked",
			UserID:          user.ID.Hex(),
			AchievementID:   def.ID,
			AchievementName: def.DisplayName,
			Timestamp:       now,
		})
	}
	return awarded
}
