package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"studyhub/db"
	"studyhub/internal/ratelimit"
	"studyhub/services"
	"studyhub/structs"

	"github.com/gin-gonic/gin"
)

// RecordAction lets the client report a gamified action that has no
// server-side generation step of its own. Only the fixed action enum
// is accepted, and reports are rate limited as a basic anti-cheat
// measure; point values are never client-supplied.
func RecordAction(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var request structs.RecordActionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	action := services.ActionKind(request.Action)
	if !services.ValidAction(action) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	allowed, err := ratelimit.Allow(ctx, db.RedisClient, userID.Hex(), "action", ratelimit.DefaultActionConfig())
	if err != nil {
		log.Printf("Rate limit check failed: %v", err)
	}
	if !allowed {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ctx.JSON(http.StatusOK, services.RecordAction(dbCtx, userID, action))
}

// GetAchievementCatalog returns the static badge catalog.
func GetAchievementCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"achievements": services.AchievementCatalog()})
}

// GetLeaderboard returns the top users by points.
func GetLeaderboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	limit := 50
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entries, err := services.TopUsers(dbCtx, limit)
	if err != nil {
		log.Printf("Failed to fetch leaderboard: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}

	me := userID.Hex()
	rows := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, gin.H{
			"rank":        e.Rank,
			"userId":      e.UserID,
			"username":    e.Username,
			"displayName": e.DisplayName,
			"points":      e.Points,
			"avatarUrl":   e.AvatarURL,
			"currentUser": e.UserID == me,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"leaderboard": rows, "total": len(rows)})
}
