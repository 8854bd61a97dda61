package services

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal format-0 header followed by an empty track
var sampleMIDI = []byte{
	'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
	'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
}

func fixedClock() time.Time {
	return time.UnixMilli(1718000000000)
}

func writeSample(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mid")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestStaticFileGenerator_RoundTrip(t *testing.T) {
	gen := NewStaticFileGenerator(writeSample(t, sampleMIDI), fixedClock)

	envelope, err := gen.Generate(context.Background(), "Hello, World! 123")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(envelope.Data)
	require.NoError(t, err)
	assert.Equal(t, sampleMIDI, decoded)
	assert.Equal(t, "audio/midi", envelope.Mimetype)
	assert.Equal(t, "1718000000000-HelloWorld123.mid", envelope.Filename)
	assert.Equal(t, StrategyStatic, gen.Strategy())
}

func TestStaticFileGenerator_Idempotent(t *testing.T) {
	gen := NewStaticFileGenerator(writeSample(t, sampleMIDI), nil)

	first, err := gen.Generate(context.Background(), "same prompt")
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), "same prompt")
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Mimetype, second.Mimetype)
}

func TestStaticFileGenerator_EmptyFile(t *testing.T) {
	gen := NewStaticFileGenerator(writeSample(t, nil), fixedClock)

	envelope, err := gen.Generate(context.Background(), "quiet")
	require.NoError(t, err)
	assert.Empty(t, envelope.Data)
}

func TestStaticFileGenerator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		prompt   string
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name:     "empty prompt",
			path:     writeSample(t, sampleMIDI),
			prompt:   "",
			wantKind: KindValidation,
			wantMsg:  "Prompt is required",
		},
		{
			name:     "missing file",
			path:     filepath.Join(t.TempDir(), "nope.mid"),
			prompt:   "anything",
			wantKind: KindNotFound,
			wantMsg:  "Sample MIDI file not found",
		},
		{
			name:     "path is a directory",
			path:     t.TempDir(),
			prompt:   "anything",
			wantKind: KindUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaticFileGenerator(tt.path, fixedClock).Generate(context.Background(), tt.prompt)
			require.Error(t, err)

			genErr := AsGenerationError(err)
			assert.Equal(t, tt.wantKind, genErr.Kind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, genErr.Message)
			} else {
				assert.NotEmpty(t, genErr.Message)
			}
		})
	}
}
