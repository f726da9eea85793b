package routes

import (
	"studyhub/controllers"

	"github.com/gin-gonic/gin"
)

// SetupQuizRoutes registers the quiz play endpoints.
func SetupQuizRoutes(rg *gin.RouterGroup) {
	rg.POST("/quizzes/:id/answer", controllers.AnswerQuizQuestion)
	rg.POST("/quizzes/:id/complete", controllers.CompleteQuiz)
}
