package main

import (
	"log"
	"os"
	"strconv"

	"studyhub/config"
	"studyhub/controllers"
	"studyhub/db"
	"studyhub/middlewares"
	"studyhub/routes"
	"studyhub/services"
	"studyhub/utils"
	"studyhub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development secrets live in .env; missing file is fine.
	godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.prod.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	controllers.InitAuthController(cfg)

	if err := services.InitGenerationService(cfg); err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis backs the leaderboard and rate limiting; the service
	// degrades to Mongo-only behavior without it.
	if cfg.Redis.Addr != "" {
		if err := db.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
		} else {
			services.StartLeaderboardScheduler()
		}
	}

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/verifyEmail", routes.VerifyEmailRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)
		auth.PUT("/user/username", routes.ChangeUsernameRouteHandler)
		auth.GET("/user/username/check", routes.CheckUsernameRouteHandler)

		routes.SetupNoteRoutes(auth)
		routes.SetupQuizRoutes(auth)

		auth.POST("/gamification/action", routes.RecordActionRouteHandler)
		auth.GET("/gamification/achievements", routes.GetAchievementCatalogRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		// WebSocket endpoint for live gamification events
		auth.GET("/ws/gamification", websocket.GamificationHandler)
	}

	return router
}
