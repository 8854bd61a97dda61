package services

import (
	"context"
	"errors"
	"time"

	"github.com/aurasynth/midi-api/internal/midi"
	"github.com/aurasynth/midi-api/internal/models"
	"github.com/aurasynth/midi-api/internal/upstream"
)

// MIDIClient is the part of the upstream client the relay needs
type MIDIClient interface {
	GenerateMIDI(ctx context.Context, prompt string) (*upstream.MIDI, error)
}

// RelayGenerator forwards each prompt to the remote generator
type RelayGenerator struct {
	client MIDIClient
	now    Clock
}

func NewRelayGenerator(client MIDIClient, now Clock) *RelayGenerator {
	if now == nil {
		now = time.Now
	}
	return &RelayGenerator{client: client, now: now}
}

func (g *RelayGenerator) Strategy() string {
	return StrategyRelay
}

func (g *RelayGenerator) Generate(ctx context.Context, prompt string) (*models.MidiEnvelope, error) {
	if prompt == "" {
		return nil, ErrPromptRequired
	}

	payload, err := g.client.GenerateMIDI(ctx, prompt)
	if err != nil {
		var remote *upstream.RemoteError
		if errors.As(err, &remote) {
			return nil, &GenerationError{Kind: KindUpstream, Message: remote.Message, Err: err}
		}
		// network errors, timeouts and bad statuses are not shown to the caller
		return nil, &GenerationError{Kind: KindUpstream, Message: msgUpstreamFailure, Err: err}
	}

	mimetype := payload.Mimetype
	if mimetype == "" {
		mimetype = midi.MimeType
	}

	return &models.MidiEnvelope{
		Filename: midi.Filename(prompt, g.now()),
		Data:     payload.Data,
		Mimetype: mimetype,
	}, nil
}
