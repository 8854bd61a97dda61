// Command midistatic serves POST /api/generate by returning the configured
// sample MIDI file for every valid prompt.
package main

import (
	"os"

	"github.com/aurasynth/midi-api/internal/app"
	"github.com/aurasynth/midi-api/internal/config"
	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/aurasynth/midi-api/internal/services"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	os.Exit(app.Main("midistatic", releaseVersion, func(cfg *config.Config, log *logger.Logger) services.Generator {
		log.Info("Serving static sample", logger.Fields{"path": cfg.SampleMIDIPath})
		return services.NewStaticFileGenerator(cfg.SampleMIDIPath, nil)
	}))
}
