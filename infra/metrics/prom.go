package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/ecoamp/core/metrics"
)

// PromSink records estimation events in Prometheus metrics.
type PromSink struct {
	estimates *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	count     prometheus.Gauge
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecoamp_estimates_total",
		Help: "Total number of estimation requests",
	}, []string{"tool", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecoamp_estimate_duration_seconds",
		Help:    "Time spent serving an estimation request",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
	count := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ecoamp_prediction_count",
		Help: "Current value of the persistent prediction counter",
	})

	var err error
	if estimates, err = register(reg, estimates); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if count, err = register(reg, count); err != nil {
		return nil, err
	}
	return &PromSink{estimates: estimates, latency: latency, count: count}, nil
}

// register adds c to reg, reusing the existing collector when one with the
// same descriptor is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordEstimate increments the request counter and observes the duration.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	s.estimates.WithLabelValues(ev.Tool, string(ev.Outcome)).Inc()
	s.latency.WithLabelValues(ev.Tool).Observe(ev.Duration.Seconds())
	return nil
}

// RecordPredictionCount sets the counter gauge.
func (s *PromSink) RecordPredictionCount(v int64) error {
	s.count.Set(float64(v))
	return nil
}
