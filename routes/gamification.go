package routes

import (
	"studyhub/controllers"

	"github.com/gin-gonic/gin"
)

func RecordActionRouteHandler(c *gin.Context) {
	controllers.RecordAction(c)
}

func GetAchievementCatalogRouteHandler(c *gin.Context) {
	controllers.GetAchievementCatalog(c)
}

func GetLeaderboardRouteHandler(c *gin.Context) {
	controllers.GetLeaderboard(c)
}
