// Package app holds the process bootstrap shared by the two deployment
// binaries: environment loading, Sentry, metrics, router and server lifecycle.
package app

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aurasynth/midi-api/internal/api"
	"github.com/aurasynth/midi-api/internal/config"
	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/aurasynth/midi-api/internal/metrics"
	"github.com/aurasynth/midi-api/internal/server"
	"github.com/aurasynth/midi-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
	metricsDrainBudget = 5 * time.Second
)

// GeneratorFactory builds the deployment's MIDI source from configuration
type GeneratorFactory func(cfg *config.Config, log *logger.Logger) services.Generator

// Main runs one service until SIGINT/SIGTERM and returns the exit code
func Main(service, version string, newGenerator GeneratorFactory) int {
	log := logger.New(os.Stderr, service)

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables", nil)
	}
	cfg := config.Load()

	if flush := initSentry(cfg, service, version, log); flush != nil {
		defer flush()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cloudWatch := metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchNamespace, log)
	recorder := metrics.NewMulti(metrics.NewSentryMetrics(), cloudWatch)

	generator := newGenerator(cfg, log)
	router := api.SetupRouter(api.Dependencies{
		Config:    cfg,
		Generator: generator,
		Logger:    log,
		Recorder:  recorder,
		Version:   version,
	})

	log.Info("Starting server", logger.Fields{
		"addr":     cfg.Addr(),
		"strategy": generator.Strategy(),
		"version":  version,
	})
	err := server.Run(ctx, cfg.Addr(), router, log)

	drainCtx, cancel := context.WithTimeout(context.Background(), metricsDrainBudget)
	defer cancel()
	cloudWatch.Wait(drainCtx)

	if err != nil {
		sentry.CaptureException(err)
		log.Error("Server stopped", err, nil)
		return 1
	}
	return 0
}

// initSentry initializes Sentry when a DSN is configured and returns the
// flush function to defer, or nil.
func initSentry(cfg *config.Config, service, version string, log *logger.Logger) func() {
	if cfg.SentryDSN == "" {
		log.Warn("Sentry not configured (SENTRY_DSN not set)", nil)
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          service + "@" + version,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            !cfg.IsProduction(),
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
			}
			return event
		},
	}); err != nil {
		log.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		return nil
	}

	log.Info("Sentry initialized", logger.Fields{"environment": cfg.Environment, "release": version})
	return func() {
		sentry.Flush(sentryFlushTimeout)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
