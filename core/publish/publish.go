// Package publish defines how estimation results leave the process.
package publish

import (
	"context"
	"errors"
	"time"
)

// ErrNotConnected is returned when the transport has no live connection.
var ErrNotConnected = errors.New("publisher not connected")

// Result is the message emitted for every successful estimation.
type Result struct {
	RequestID  string    `json:"request_id"`
	Tool       string    `json:"tool"`
	Input      any       `json:"input"`
	Output     any       `json:"output"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers results to downstream consumers. Implementations report
// their own delivery failures to monitoring; callers only log the returned error.
type Publisher interface {
	Publish(ctx context.Context, r Result) error
	Close() error
}

// NopPublisher drops every result.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Result) error { return nil }
func (NopPublisher) Close() error                          { return nil }
