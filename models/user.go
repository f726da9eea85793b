package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnlockedAchievement is one entry of a user's achievement set.
type UnlockedAchievement struct {
	ID         string    `bson:"id" json:"id"`
	UnlockedAt time.Time `bson:"unlockedAt" json:"unlockedAt"`
}

// User defines a user entity
type User struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string                `bson:"email" json:"email"`
	DisplayName      string                `bson:"displayName" json:"displayName"`
	Username         string                `bson:"username,omitempty" json:"username,omitempty"`
	UsernameLower    string                `bson:"usernameLower,omitempty" json:"-"`
	Bio              string                `bson:"bio" json:"bio"`
	AvatarURL        string                `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Points           int                   `bson:"points" json:"points"`
	CurrentStreak    int                   `bson:"currentStreak" json:"currentStreak"`
	LongestStreak    int                   `bson:"longestStreak" json:"longestStreak"`
	LastActivityDate time.Time             `bson:"lastActivityDate,omitempty" json:"lastActivityDate,omitempty"`
	Counters         map[string]int        `bson:"counters,omitempty" json:"counters,omitempty"`
	Achievements     []UnlockedAchievement `bson:"achievements,omitempty" json:"achievements,omitempty"`
	CreatedAt        time.Time             `bson:"createdAt" json:"createdAt"`
}

// HasAchievement reports whether the user already unlocked the given badge.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// AchievementIDs returns the ids of every unlocked badge.
func (u *User) AchievementIDs() []string {
	ids := make([]string, 0, len(u.Achievements))
	for _, a := range u.Achievements {
		ids = append(ids, a.ID)
	}
	return ids
}
