package api

import (
	"github.com/aurasynth/midi-api/internal/api/handlers"
	apimiddleware "github.com/aurasynth/midi-api/internal/api/middleware"
	"github.com/aurasynth/midi-api/internal/config"
	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/aurasynth/midi-api/internal/metrics"
	"github.com/aurasynth/midi-api/internal/services"
	"github.com/gin-gonic/gin"
)

// Dependencies are the long-lived objects a deployment wires into its router
type Dependencies struct {
	Config    *config.Config
	Generator services.Generator
	Logger    *logger.Logger
	Recorder  metrics.Recorder
	Version   string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	router := gin.New()

	// Request tracking first so the request ID exists for everything below
	// and recovered panics are still logged with their final status
	router.Use(apimiddleware.RequestTracking(deps.Logger, recorder))

	// Recovery must wrap the Sentry middleware, which re-panics
	router.Use(apimiddleware.RecoverWithSentry(deps.Logger))
	router.Use(apimiddleware.SentryMiddleware())

	router.Use(apimiddleware.CORS(deps.Config.AllowedOrigins))

	strategy := deps.Generator.Strategy()

	healthHandler := handlers.NewHealthHandler(strategy)
	router.GET("/health", healthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.HealthCheck)

		metricsHandler := handlers.NewMetricsHandler(deps.Version, strategy)
		api.GET("/metrics", metricsHandler.GetMetrics)

		generationHandler := handlers.NewGenerationHandler(deps.Generator, deps.Logger, recorder)
		api.POST("/generate", generationHandler.Generate)
	}

	return router
}
