package main

import (
	"log"
	"net/http"

	"classic-tetris-api/config"
	_ "classic-tetris-api/docs" // Swagger docs
	"classic-tetris-api/handlers"
	"classic-tetris-api/middleware"
	"classic-tetris-api/models"
	"classic-tetris-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "classic-tetris-api"

// @title           Classic Tetris API
// @version         1.0
// @description     Score API for Classic Tetris game

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings := config.LoadSettings()

	logger, err := config.NewLogger(settings)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := config.ConnectDatabase(settings, logger)
	if err != nil {
		sugar.Fatalw("failed to connect database", "error", err)
	}

	// Keep dev databases usable without running the migrate binary.
	// Deployments run cmd/migrate against the real schema history.
	if !settings.IsProduction() {
		if err := db.AutoMigrate(&models.Player{}, &models.Score{}); err != nil {
			sugar.Fatalw("auto-migration failed", "error", err)
		}
	}

	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	scoreService := services.NewScoreService(db, sugar)
	scoreHandler := handlers.NewScoreHandler(scoreService, sugar)
	rateLimiter := middleware.NewRateLimiter(settings.RateLimitRPS, settings.RateLimitBurst)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(sugar))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     settings.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	r.GET("/", rootHandler)
	r.GET("/health", healthHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(rateLimiter.Middleware())
	{
		api.POST("/players", scoreHandler.CreatePlayer)
		api.POST("/scores", scoreHandler.CreateScore)
		api.GET("/scores", scoreHandler.GetRankings)
		api.GET("/scores/:player_id", scoreHandler.GetPlayerScores)
	}

	sugar.Infow("server starting", "port", settings.Port, "environment", settings.Environment)
	if err := r.Run(":" + settings.Port); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

// RootResponse points fresh visitors at the useful endpoints.
type RootResponse struct {
	Message string `json:"message" example:"Classic Tetris API"`
	Docs    string `json:"docs" example:"/swagger/index.html"`
	Health  string `json:"health" example:"/health"`
}

// @Summary Root
// @Description Service landing document
// @Tags health
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: "Classic Tetris API",
		Docs:    "/swagger/index.html",
		Health:  "/health",
	})
}

// @Summary Health Check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: serviceName,
	})
}
