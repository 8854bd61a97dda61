// Command midirelay serves POST /api/generate by forwarding each prompt to the
// upstream MIDI generator and relaying its answer.
package main

import (
	"os"

	"github.com/aurasynth/midi-api/internal/app"
	"github.com/aurasynth/midi-api/internal/config"
	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/aurasynth/midi-api/internal/services"
	"github.com/aurasynth/midi-api/internal/upstream"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	os.Exit(app.Main("midirelay", releaseVersion, func(cfg *config.Config, log *logger.Logger) services.Generator {
		client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout)
		log.Info("Relaying to upstream", logger.Fields{
			"url":     client.URL(),
			"timeout": cfg.UpstreamTimeout.String(),
		})
		return services.NewRelayGenerator(client, nil)
	}))
}
