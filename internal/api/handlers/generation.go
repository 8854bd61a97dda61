package handlers

import (
	"net/http"
	"time"

	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/aurasynth/midi-api/internal/metrics"
	"github.com/aurasynth/midi-api/internal/models"
	"github.com/aurasynth/midi-api/internal/services"
	"github.com/gin-gonic/gin"
)

type GenerationHandler struct {
	generator services.Generator
	log       *logger.Logger
	recorder  metrics.Recorder
}

func NewGenerationHandler(generator services.Generator, log *logger.Logger, recorder metrics.Recorder) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
		log:       log,
		recorder:  recorder,
	}
}

// Generate handles POST /api/generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.NewValidationError(err))
		return
	}

	strategy := h.generator.Strategy()
	fields := logger.WithContext(c)
	fields["prompt_length"] = len(req.Prompt)

	start := time.Now()
	envelope, err := h.generator.Generate(c.Request.Context(), req.Prompt)
	duration := time.Since(start)
	h.recorder.RecordGeneration(c.Request.Context(), strategy, duration, err == nil)

	if err != nil {
		genErr := services.AsGenerationError(err)
		status := statusFor(genErr.Kind)
		if status >= http.StatusInternalServerError {
			fields["strategy"] = strategy
			fields["kind"] = genErr.Kind.String()
			h.log.Error("Generation failed", genErr, fields)
		} else {
			h.log.LogGeneration(strategy, duration, genErr, fields)
		}
		respondError(c, genErr)
		return
	}

	fields["filename"] = envelope.Filename
	h.log.LogGeneration(strategy, duration, nil, fields)

	c.JSON(http.StatusOK, models.GenerateResponse{Midi: *envelope})
}

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err *services.GenerationError) {
	c.JSON(statusFor(err.Kind), models.ErrorResponse{Error: err.Message})
}
