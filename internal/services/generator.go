package services

import (
	"context"
	"time"

	"github.com/aurasynth/midi-api/internal/models"
)

const (
	StrategyStatic = "static"
	StrategyRelay  = "relay"
)

// Generator turns a prompt into a MIDI envelope. Implementations return
// *GenerationError on failure.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*models.MidiEnvelope, error)
	Strategy() string
}

// Clock returns the current time; filenames are stamped with it
type Clock func() time.Time
