package routes

import (
	"studyhub/controllers"

	"github.com/gin-gonic/gin"
)

func GetProfileRouteHandler(c *gin.Context) {
	controllers.GetProfile(c)
}

func UpdateProfileRouteHandler(c *gin.Context) {
	controllers.UpdateProfile(c)
}

func ChangeUsernameRouteHandler(c *gin.Context) {
	controllers.ChangeUsername(c)
}

func CheckUsernameRouteHandler(c *gin.Context) {
	controllers.CheckUsername(c)
}
