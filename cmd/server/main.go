package main

import (
	"log"
	"os"
	"strconv"

	"agenticads/config"
	"agenticads/db"
	"agenticads/middlewares"
	"agenticads/routes"
	"agenticads/services"
	"agenticads/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := db.Open(cfg.Storage.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer store.Close()

	services.InitServices(cfg, store)

	hub := websocket.NewHub()
	services.GetDataCacheService().SetListener(hub)

	// Warm the cache; in gated mode this is expected to fail until login
	if err := services.GetDataCacheService().Refresh(); err != nil {
		log.Printf("Initial data refresh failed: %v", err)
	}

	router := setupRouter(cfg, hub)

	port := strconv.Itoa(cfg.Server.Port)
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	log.Printf("AgenticAds client service starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, hub *websocket.Hub) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Feedback-Action"},
		AllowCredentials: true,
	}))

	router.GET("/health", routes.HealthRouteHandler)

	api := router.Group("/api")
	{
		api.GET("/session", routes.GetSessionRouteHandler)
		api.POST("/session/view", routes.SetViewRouteHandler)

		api.POST("/auth/login", routes.AdminLoginRouteHandler)
		api.POST("/auth/logout", routes.AdminLogoutRouteHandler)

		api.POST("/generate", routes.GenerateRouteHandler)
		api.GET("/generate/status", routes.GenerationStatusRouteHandler)

		api.GET("/data", routes.GetDataRouteHandler)
		api.POST("/data/refresh", routes.RefreshDataRouteHandler)

		api.POST("/feedback/action", routes.FeedbackActionRouteHandler)
		api.POST("/feedback", routes.SubmitFeedbackRouteHandler)

		// Admin-only surface
		admin := api.Group("/dashboard")
		admin.Use(middlewares.SessionAuthMiddleware())
		{
			admin.GET("/stats", routes.DashboardStatsRouteHandler)
			admin.GET("/charts", routes.DashboardChartsRouteHandler)
		}
	}

	// Live dashboard feed; token checked in the handler since browsers
	// cannot set headers on websocket dials
	router.GET("/ws/dashboard", hub.DashboardFeedHandler)

	return router
}
