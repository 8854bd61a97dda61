// Package midi holds the small amount of MIDI-specific knowledge the services
// need: the mime type and how a download filename is derived from a prompt.
package midi

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// MimeType is the content type of every envelope produced locally
	MimeType = "audio/midi"

	// Extension is appended to derived filenames
	Extension = ".mid"

	maxPromptChars = 20
)

// SanitizePrompt keeps only letters and digits and truncates to 20 characters
func SanitizePrompt(prompt string) string {
	var b strings.Builder
	n := 0
	for _, r := range prompt {
		if n == maxPromptChars {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// Filename builds "<unix millis>-<sanitized prompt>.mid"
func Filename(prompt string, at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + SanitizePrompt(prompt) + Extension
}
