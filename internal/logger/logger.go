package logger

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger writes structured lines and mirrors them to Sentry when a client is bound.
type Logger struct {
	std *log.Logger
}

// New creates a logger writing to w, each line prefixed with the service name
func New(w io.Writer, service string) *Logger {
	return &Logger{
		std: log.New(w, "["+service+"] ", log.LstdFlags|log.LUTC),
	}
}

// WithContext extracts request context for logging
func WithContext(c *gin.Context) Fields {
	return Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
}

// Info logs an informational message with structured fields
func (l *Logger) Info(msg string, fields Fields) {
	l.std.Printf("[INFO] %s %s", msg, formatFields(fields))
	addBreadcrumb("info", msg, fields, sentry.LevelInfo)
}

// Warn logs a warning message with structured fields
func (l *Logger) Warn(msg string, fields Fields) {
	l.std.Printf("[WARN] %s %s", msg, formatFields(fields))
	addBreadcrumb("warning", msg, fields, sentry.LevelWarning)
}

// Debug logs a debug message with structured fields
func (l *Logger) Debug(msg string, fields Fields) {
	l.std.Printf("[DEBUG] %s %s", msg, formatFields(fields))
	addBreadcrumb("debug", msg, fields, sentry.LevelDebug)
}

// Error logs an error message with structured fields and sends to Sentry.
// A nil err is reported as a message event instead of an exception.
func (l *Logger) Error(msg string, err error, fields Fields) {
	l.std.Printf("[ERROR] %s: %v %s", msg, err, formatFields(fields))

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range fields {
			scope.SetContext(key, map[string]interface{}{
				"value": value,
			})
		}
		if requestID, ok := fields["request_id"].(string); ok {
			scope.SetTag("request_id", requestID)
		}
		if strategy, ok := fields["strategy"].(string); ok {
			scope.SetTag("strategy", strategy)
		}

		if err != nil {
			hub.CaptureException(err)
			return
		}
		scope.SetLevel(sentry.LevelError)
		hub.CaptureMessage(msg)
	})
}

// LogGeneration logs the outcome of one prompt-to-MIDI exchange
func (l *Logger) LogGeneration(strategy string, duration time.Duration, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["strategy"] = strategy
	fields["duration_ms"] = duration.Milliseconds()

	if err != nil {
		fields["error"] = err.Error()
		l.Warn("Generation failed", fields)
		return
	}
	l.Info("Generation completed", fields)
}

func addBreadcrumb(kind, msg string, fields Fields, level sentry.Level) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     convertFieldsToMap(fields),
			Level:    level,
		}, nil)
	}
}

// formatFields renders fields as {k=v, ...} with keys in sorted order
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(formatValue(fields[k]))
	}
	b.WriteString("}")
	return b.String()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func convertFieldsToMap(fields Fields) map[string]interface{} {
	result := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		result[k] = v
	}
	return result
}
