package config

import (
	"net"
	"os"
	"strings"
	"time"
)

const (
	defaultUpstreamTimeout = 60 * time.Second
	environmentProduction  = "production"
)

// Config holds the application configuration.
// Both deployment variants read the same set of variables; each binary only
// looks at the fields its strategy needs.
type Config struct {
	// Environment
	Environment string
	Host        string
	Port        string

	// Static-file strategy
	SampleMIDIPath string

	// Relay strategy
	UpstreamURL     string
	UpstreamTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Observability
	SentryDSN           string // Sentry DSN for error tracking
	CloudWatchNamespace string // Namespace for custom metrics (production only)
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Host:                getEnv("HOST", "0.0.0.0"),
		Port:                getEnv("PORT", "5001"),
		SampleMIDIPath:      getEnv("SAMPLE_MIDI_PATH", "./sample.mid"),
		UpstreamURL:         getEnv("UPSTREAM_URL", "http://localhost:5001/generate-midi"),
		UpstreamTimeout:     getDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
		AllowedOrigins:      getList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "AuraSynth/MIDI"),
	}
}

// Addr returns the host:port pair the server binds to
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == environmentProduction
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
