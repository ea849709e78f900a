package metrics

import (
	"errors"
	"io"
	"time"
)

// Outcome classifies the result of an estimation call.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// EstimateEvent describes one estimation call.
type EstimateEvent struct {
	RequestID string
	Tool      string
	Outcome   Outcome
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records estimation events for observability purposes.
type MetricsSink interface {
	RecordEstimate(ev EstimateEvent) error
}

// CounterRecorder records the current value of the prediction counter.
type CounterRecorder interface {
	RecordPredictionCount(value int64) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordEstimate(EstimateEvent) error { return nil }

// Ensure NopSink implements CounterRecorder.
func (NopSink) RecordPredictionCount(int64) error { return nil }

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEstimate forwards the event to every sink. All sinks are tried
// and their errors joined.
func (m *MultiSink) RecordEstimate(ev EstimateEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordEstimate(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink holding resources and joins their errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := CloseSink(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseSink closes s when it implements io.Closer.
func CloseSink(s MetricsSink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RecordPredictionCount forwards the counter value to sinks that support it.
func (m *MultiSink) RecordPredictionCount(value int64) error {
	var errs []error
	for _, s := range m.Sinks {
		if cr, ok := s.(CounterRecorder); ok {
			if err := cr.RecordPredictionCount(value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
