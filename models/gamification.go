package models

import "time"

// AchievementDefinition is a static catalog entry. Definitions are
// compiled into the binary and never change at runtime.
type AchievementDefinition struct {
	ID          string `json:"id"`
	CounterName string `json:"counterName"`
	Threshold   int    `json:"threshold"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// GamificationEvent represents a gamification event to broadcast via WebSocket
type GamificationEvent struct {
	Type            string    `json:"type"` // "points_awarded", "achievement_unlocked", "streak_milestone"
	UserID          string    `json:"userId"`
	Action          string    `json:"action,omitempty"`
	Points          int       `json:"points,omitempty"`
	NewPoints       int       `json:"newPoints,omitempty"`
	AchievementID   string    `json:"achievementId,omitempty"`
	AchievementName string    `json:"achievementName,omitempty"`
	Streak          int       `json:"streak,omitempty"`
	StreakMilestone int       `json:"streakMilestone,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
