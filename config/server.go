package config

import (
	"fmt"

	"github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/factory"
)

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Addr string `json:"addr"`
	// Mode is the gin mode: release, debug or test.
	Mode string `json:"mode"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
}

// Validate checks the gin mode.
func (c ServerConfig) Validate() error {
	switch c.Mode {
	case "release", "debug", "test":
		return nil
	}
	return fmt.Errorf("unknown mode %s", c.Mode)
}

// CounterConfig selects the prediction counter backend.
type CounterConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// SetDefaults persists the counter to a local SQLite file.
func (c *CounterConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = "sqlite"
	}
	if c.Type == "sqlite" {
		if c.Conf == nil {
			c.Conf = map[string]any{}
		}
		if _, ok := c.Conf["path"]; !ok {
			c.Conf["path"] = "ecoamp.db"
		}
		if _, ok := c.Conf["key"]; !ok {
			c.Conf["key"] = counter.DefaultKey
		}
	}
}

// Validate requires a backend type.
func (c CounterConfig) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("type is required")
	}
	return nil
}

// Module returns the factory configuration of the backend.
func (c CounterConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: c.Type, Conf: c.Conf}
}
