package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"studyhub/db"
	"studyhub/models"
	"studyhub/services"
	"studyhub/structs"
	"studyhub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile retrieves and returns user profile data
func GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user models.User
	err := db.Users().FindOne(dbCtx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	avatarURL := user.AvatarURL
	if avatarURL == "" {
		name := user.DisplayName
		if name == "" {
			name = utils.ExtractNameFromEmail(user.Email)
		}
		avatarURL = utils.AvatarURLFor(name)
	}

	// Join unlocked badges with their catalog definitions.
	unlockedAt := make(map[string]time.Time, len(user.Achievements))
	for _, a := range user.Achievements {
		unlockedAt[a.ID] = a.UnlockedAt
	}
	achievements := make([]gin.H, 0, len(services.AchievementCatalog()))
	for _, def := range services.AchievementCatalog() {
		entry := gin.H{
			"id":          def.ID,
			"displayName": def.DisplayName,
			"description": def.Description,
			"unlocked":    false,
		}
		if ts, ok := unlockedAt[def.ID]; ok {
			entry["unlocked"] = true
			entry["unlockedAt"] = ts
		}
		achievements = append(achievements, entry)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"profile": gin.H{
			"displayName": user.DisplayName,
			"username":    user.Username,
			"email":       user.Email,
			"bio":         user.Bio,
			"avatarUrl":   avatarURL,
			"createdAt":   user.CreatedAt,
		},
		"stats": gin.H{
			"points":        user.Points,
			"currentStreak": user.CurrentStreak,
			"longestStreak": user.LongestStreak,
			"counters":      user.Counters,
		},
		"achievements": achievements,
	})
}

// UpdateProfile modifies user display name and bio
func UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var updateData structs.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"displayName": updateData.DisplayName,
		"bio":         updateData.Bio,
	}}
	if _, err := db.Users().UpdateOne(dbCtx, bson.M{"_id": userID}, update); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// ChangeUsername reserves a new public username for the caller. The
// registry's typed errors map onto the response codes; everything else
// is a store failure the client may retry.
func ChangeUsername(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var request structs.ChangeUsernameRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := services.ReserveUsername(dbCtx, userID, request.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUsername):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrUsernameTaken):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"username": result.FinalUsername,
		"changed":  result.Changed,
	})
}

// CheckUsername reports whether a username could currently be claimed.
func CheckUsername(ctx *gin.Context) {
	username := ctx.Query("username")

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ctx.JSON(http.StatusOK, gin.H{
		"username":  username,
		"available": services.IsUsernameAvailable(dbCtx, username),
	})
}
