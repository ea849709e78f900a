// Package monitoring defines the error reporting port used by the
// dashboard and the HTTP API.
package monitoring

import (
	"fmt"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// Recover must be deferred directly; it reports and re-raises panics.
	Recover()
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

// Config holds Sentry settings. An empty DSN disables reporting.
type Config struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	Release          string  `json:"release"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
}

// SetDefaults applies default values.
func (c *Config) SetDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
}

// Validate checks the sample rate bounds.
func (c Config) Validate() error {
	if c.TracesSampleRate < 0 || c.TracesSampleRate > 1 {
		return fmt.Errorf("sentry.traces_sample_rate must be within [0,1], got %v", c.TracesSampleRate)
	}
	return nil
}
