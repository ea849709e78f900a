package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/ecoamp/core/factory"
	coremetrics "github.com/kilianp07/ecoamp/core/metrics"
)

// InfluxConfig is the conf block of an "influx" sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// Validate requires the server URL and the target bucket.
func (c InfluxConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("influx sink: url is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("influx sink: bucket is required")
	}
	return nil
}

func init() {
	builtins := map[string]factory.Factory[coremetrics.MetricsSink]{
		"nop":        func(map[string]any) (coremetrics.MetricsSink, error) { return coremetrics.NopSink{}, nil },
		"prometheus": newPromFromConf,
		"influx":     newInfluxFromConf,
	}
	for name, f := range builtins {
		if err := coremetrics.RegisterMetricsSink(name, f); err != nil {
			panic(err)
		}
	}
}

// newPromFromConf registers on the default registry, served by the
// metrics.prometheus_addr listener.
func newPromFromConf(map[string]any) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

func newInfluxFromConf(conf map[string]any) (coremetrics.MetricsSink, error) {
	var c InfluxConfig
	if err := factory.Decode(conf, &c); err != nil {
		return nil, fmt.Errorf("influx sink conf: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
}
