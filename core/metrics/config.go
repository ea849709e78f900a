package metrics

import (
	"fmt"

	"github.com/kilianp07/ecoamp/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks          []factory.ModuleConfig `json:"sinks"`
	PrometheusAddr string                 `json:"prometheus_addr"`
}

// SetDefaults applies default values.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}

// PrometheusEnabled reports whether a prometheus sink is configured.
func (c Config) PrometheusEnabled() bool {
	for _, s := range c.Sinks {
		if s.Type == "prometheus" {
			return true
		}
	}
	return false
}
