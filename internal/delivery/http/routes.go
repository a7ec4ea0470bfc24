package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillmatch/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	v1.Use(BodyLimitMiddleware(cfg.Server.MaxUploadBytes))
	{
		match := v1.Group("/match")
		{
			match.POST("", handler.MatchUpload)
			match.POST("/advanced", handler.MatchUploadAdvanced)
			match.POST("/text", handler.MatchText)
		}

		v1.POST("/rank/candidates", handler.RankCandidates)
		v1.POST("/jobs/recommend", handler.RecommendJobs)

		skills := v1.Group("/skills")
		{
			skills.GET("", handler.ListSkills)
			skills.POST("/extract", handler.ExtractSkills)
		}
	}

	return router
}
