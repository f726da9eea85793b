package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"studyhub/db"
	"studyhub/internal/ratelimit"
	"studyhub/models"
	"studyhub/services"
	"studyhub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const generationTimeout = 60 * time.Second

// CreateNote stores a new raw note for the caller.
func CreateNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var request structs.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := services.CreateNote(dbCtx, &models.Note{
		UserID:  userID,
		Title:   request.Title,
		Content: request.Content,
	})
	if err != nil {
		log.Printf("Error creating note: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id})
}

// ListNotes returns the caller's notes, newest first.
func ListNotes(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	notes, err := services.ListNotes(dbCtx, userID, 50)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notes": notes, "total": len(notes)})
}

// GetNote returns one note with every artifact generated from it.
func GetNote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	noteID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bundle, err := services.GetNoteBundle(dbCtx, userID, noteID)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch note"})
		return
	}

	ctx.JSON(http.StatusOK, bundle)
}

// generationArgs resolves the shared preamble of every generation
// endpoint: auth, note id parsing and the generation rate limit.
func generationArgs(ctx *gin.Context) (primitive.ObjectID, primitive.ObjectID, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	noteID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note id"})
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	allowed, err := ratelimit.Allow(ctx, db.RedisClient, userID.Hex(), "generate", ratelimit.DefaultGenerationConfig())
	if err != nil {
		log.Printf("Rate limit check failed: %v", err)
	}
	if !allowed {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	return userID, noteID, true
}

func respondGeneration(ctx *gin.Context, key string, artifact interface{}, result services.RecordResult, err error) {
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		log.Printf("Generation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{key: artifact, "gamification": result})
}

// GenerateSummary creates an AI summary for a note.
func GenerateSummary(ctx *gin.Context) {
	userID, noteID, ok := generationArgs(ctx)
	if !ok {
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	summary, result, err := services.GenerateSummary(genCtx, userID, noteID)
	respondGeneration(ctx, "summary", summary, result, err)
}

// GenerateFlashcards creates an AI flashcard set for a note.
func GenerateFlashcards(ctx *gin.Context) {
	userID, noteID, ok := generationArgs(ctx)
	if !ok {
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	set, result, err := services.GenerateFlashcards(genCtx, userID, noteID)
	respondGeneration(ctx, "flashcards", set, result, err)
}

// GenerateMindMap creates an AI mind map for a note.
func GenerateMindMap(ctx *gin.Context) {
	userID, noteID, ok := generationArgs(ctx)
	if !ok {
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	mindMap, result, err := services.GenerateMindMap(genCtx, userID, noteID)
	respondGeneration(ctx, "mindMap", mindMap, result, err)
}

// GeneratePodcast creates an AI podcast script for a note.
func GeneratePodcast(ctx *gin.Context) {
	userID, noteID, ok := generationArgs(ctx)
	if !ok {
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	script, result, err := services.GeneratePodcastScript(genCtx, userID, noteID)
	respondGeneration(ctx, "podcast", script, result, err)
}

// GenerateQuiz creates an AI quiz for a note. Answers stay server-side.
func GenerateQuiz(ctx *gin.Context) {
	userID, noteID, ok := generationArgs(ctx)
	if !ok {
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	quiz, err := services.GenerateQuiz(genCtx, userID, noteID)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		log.Printf("Quiz generation failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"quiz": quiz})
}
