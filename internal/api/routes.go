package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/udyamlens/udyamlens/internal/api/handlers"
	"github.com/udyamlens/udyamlens/internal/cache"
	"github.com/udyamlens/udyamlens/internal/config"
	"github.com/udyamlens/udyamlens/internal/database"
	"github.com/udyamlens/udyamlens/internal/middleware"
	"github.com/udyamlens/udyamlens/internal/narrative"
	"github.com/udyamlens/udyamlens/internal/services"
)

// SetupRoutes wires every endpoint onto the router. Analysis and
// dashboard routes require a valid JWT; registration, login, health and
// templates are public.
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *database.PostgresDB,
	redis *database.RedisClient,
	narrativeClient *narrative.Client,
	logger *logrus.Logger,
) {
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	auth := middleware.NewAuthMiddleware(cfg.Security.JWTSecret, cfg.Security.JWTExpiryDuration())

	analysisRepo := database.NewAnalysisRepository(db)
	userRepo := database.NewUserRepository(db)
	dashCache := cache.NewDashboardCache(redis.Client, cfg.Dashboard.CacheTTLDuration())
	analysisService := services.NewAnalysisService(analysisRepo, narrativeClient, dashCache, logger)

	analysisHandler := handlers.NewAnalysisHandler(analysisService, logger)
	userHandler := handlers.NewUserHandler(userRepo, auth, cfg.Security.BcryptCost, logger)
	templateHandler := handlers.NewTemplateHandler()
	healthHandler := handlers.NewHealthHandler(db, redis, narrativeClient, cfg.Version)

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/health/live", healthHandler.LivenessCheck)

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
		}

		templates := v1.Group("/templates")
		{
			templates.GET("/:vertical", templateHandler.Columns)
			templates.GET("/:vertical/csv", templateHandler.Download)
		}

		protected := v1.Group("")
		protected.Use(auth.RequireAuth())
		{
			protected.POST("/analyze/:vertical", analysisHandler.Analyze)
			protected.GET("/dashboard", analysisHandler.Overview)

			vertical := protected.Group("/:vertical")
			{
				vertical.GET("/analyses", analysisHandler.History)
				vertical.GET("/analyses/:id", analysisHandler.Get)
				vertical.GET("/analyses/:id/narrative", analysisHandler.Narrative)
				vertical.GET("/dashboard", analysisHandler.VerticalDashboard)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
