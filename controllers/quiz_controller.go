package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"studyhub/services"
	"studyhub/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerQuizQuestion grades one answer and reports the gamification
// outcome for correct answers.
func AnswerQuizQuestion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	quizID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	var request structs.QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	correct, result, err := services.AnswerQuiz(dbCtx, userID, quizID, request.QuestionIndex, request.Choice)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		case errors.Is(err, services.ErrQuestionOutOfRange):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Question index out of range"})
		default:
			log.Printf("Error grading quiz answer: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"correct": correct, "gamification": result})
}

// CompleteQuiz marks a quiz as finished and awards completion points.
func CompleteQuiz(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	quizID, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := services.CompleteQuiz(dbCtx, userID, quizID)
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found or already completed"})
			return
		}
		log.Printf("Error completing quiz: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gamification": result})
}
