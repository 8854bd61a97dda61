package services

import (
	"context"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/aurasynth/midi-api/internal/midi"
	"github.com/aurasynth/midi-api/internal/models"
)

// StaticFileGenerator answers every prompt with the same sample file
type StaticFileGenerator struct {
	path string
	now  Clock
}

func NewStaticFileGenerator(path string, now Clock) *StaticFileGenerator {
	if now == nil {
		now = time.Now
	}
	return &StaticFileGenerator{path: path, now: now}
}

func (g *StaticFileGenerator) Strategy() string {
	return StrategyStatic
}

// Path returns the sample file location
func (g *StaticFileGenerator) Path() string {
	return g.path
}

func (g *StaticFileGenerator) Generate(_ context.Context, prompt string) (*models.MidiEnvelope, error) {
	if prompt == "" {
		return nil, ErrPromptRequired
	}

	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &GenerationError{Kind: KindNotFound, Message: msgSampleNotFound, Err: err}
		}
		return nil, &GenerationError{Kind: KindUnexpected, Message: err.Error(), Err: err}
	}

	return &models.MidiEnvelope{
		Filename: midi.Filename(prompt, g.now()),
		Data:     base64.StdEncoding.EncodeToString(data),
		Mimetype: midi.MimeType,
	}, nil
}
