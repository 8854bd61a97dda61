package models

// GenerateRequest is the body of POST /api/generate
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// MidiEnvelope carries one MIDI file back to the caller
type MidiEnvelope struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`     // standard base64 of the raw MIDI bytes
	Mimetype string `json:"mimetype"` // "audio/midi" unless the upstream declares otherwise
}

// GenerateResponse wraps a successful generation
type GenerateResponse struct {
	Midi MidiEnvelope `json:"midi"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
