// Package upstream talks to the remote MIDI generation service that the relay
// deployment forwards prompts to. The remote exposes POST /generate-midi and
// answers with the same envelope shape this API returns.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultURL     = "http://localhost:5001/generate-midi"
	defaultTimeout = 60 * time.Second

	// cap on how much of an upstream body is read; generated files are small
	maxBodyBytes = 32 << 20
)

// ErrMissingMIDI is returned when a successful response carries no midi.data
var ErrMissingMIDI = errors.New("upstream: response missing midi data")

// RemoteError is an error message reported by the upstream in its body
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("upstream: %s", e.Message)
}

// StatusError is a non-2xx answer without a usable error message
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status %d", e.StatusCode)
}

type Client struct {
	url        string
	httpClient *http.Client
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// MIDI is the nested payload of a successful response
type MIDI struct {
	Filename string `json:"filename,omitempty"`
	Data     string `json:"data"`
	Mimetype string `json:"mimetype"`
}

type generateResponse struct {
	Midi  *MIDI  `json:"midi,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewClient builds a client for the given endpoint URL. The timeout bounds the
// whole exchange including reading the body.
func NewClient(url string, timeout time.Duration) *Client {
	url = strings.TrimSpace(url)
	if url == "" {
		url = defaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the endpoint the client posts to
func (c *Client) URL() string {
	return c.url
}

// GenerateMIDI posts the prompt upstream and returns the nested MIDI payload.
// The data field is returned exactly as received (already base64).
func (c *Client) GenerateMIDI(ctx context.Context, prompt string) (*MIDI, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("upstream: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var parsed generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("upstream: decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: parsed.Error}
	}
	if parsed.Midi == nil || parsed.Midi.Data == "" {
		return nil, ErrMissingMIDI
	}

	return parsed.Midi, nil
}
