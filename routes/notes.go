package routes

import (
	"studyhub/controllers"

	"github.com/gin-gonic/gin"
)

// SetupNoteRoutes registers the note and generation endpoints.
func SetupNoteRoutes(rg *gin.RouterGroup) {
	rg.POST("/notes", controllers.CreateNote)
	rg.GET("/notes", controllers.ListNotes)
	rg.GET("/notes/:id", controllers.GetNote)
	rg.POST("/notes/:id/summary", controllers.GenerateSummary)
	rg.POST("/notes/:id/flashcards", controllers.GenerateFlashcards)
	rg.POST("/notes/:id/mindmap", controllers.GenerateMindMap)
	rg.POST("/notes/:id/podcast", controllers.GeneratePodcast)
	rg.POST("/notes/:id/quiz", controllers.GenerateQuiz)
}
