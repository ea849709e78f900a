// Package metrics defines the sinks that record estimation activity.
// Every dashboard call produces an EstimateEvent; sinks such as the
// Prometheus and InfluxDB implementations in infra/metrics persist them.
// NewMetricsSink builds sinks from configuration and combines several of
// them into a MultiSink automatically.
package metrics
