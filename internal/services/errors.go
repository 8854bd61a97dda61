package services

import (
	"errors"
	"fmt"
)

// ErrorKind tags why a generation failed; the HTTP layer maps it to a status
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindValidation
	KindNotFound
	KindUpstream
)

const (
	msgPromptRequired  = "Prompt is required"
	msgSampleNotFound  = "Sample MIDI file not found"
	msgUpstreamFailure = "Failed to generate MIDI"
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "unexpected"
	}
}

// GenerationError is the only error type generators return.
// Message is safe to show to callers; Err keeps the underlying cause for logs.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrPromptRequired is returned for a missing or empty prompt
var ErrPromptRequired = &GenerationError{Kind: KindValidation, Message: msgPromptRequired}

// NewValidationError reports a request that failed validation
func NewValidationError(cause error) *GenerationError {
	return &GenerationError{Kind: KindValidation, Message: msgPromptRequired, Err: cause}
}

// AsGenerationError classifies any error. Errors that are not already tagged
// become KindUnexpected carrying their own message.
func AsGenerationError(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &GenerationError{Kind: KindUnexpected, Message: err.Error(), Err: err}
}
