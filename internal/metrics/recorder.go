package metrics

import (
	"context"
	"time"
)

// Recorder receives request and generation measurements
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordGeneration(ctx context.Context, strategy string, duration time.Duration, success bool)
}

type multiRecorder []Recorder

// NewMulti fans every measurement out to all non-nil recorders
func NewMulti(recorders ...Recorder) Recorder {
	var out multiRecorder
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiRecorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m multiRecorder) RecordGeneration(ctx context.Context, strategy string, duration time.Duration, success bool) {
	for _, r := range m {
		r.RecordGeneration(ctx, strategy, duration, success)
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordAPIRequest(context.Context, string, int, time.Duration) {}

func (Nop) RecordGeneration(context.Context, string, time.Duration, bool) {}
