package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/ecoamp/core/dashboard"
	"github.com/kilianp07/ecoamp/core/metrics"
	"github.com/kilianp07/ecoamp/core/monitoring"
	"github.com/kilianp07/ecoamp/infra/mqtt"
)

type Config struct {
	Server    ServerConfig      `json:"server"`
	Logging   LoggingConfig     `json:"logging"`
	Counter   CounterConfig     `json:"counter"`
	Metrics   metrics.Config    `json:"metrics"`
	MQTT      mqtt.Config       `json:"mqtt"`
	Sentry    monitoring.Config `json:"sentry"`
	Dashboard dashboard.Config  `json:"dashboard"`
}

// Load reads the YAML or JSON file at path, applies K_ prefixed environment
// overrides (K_SERVER__ADDR sets server.addr) and validates the result.
// An empty path loads defaults and environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	// The callback maps K_SERVER__ADDR to server.addr, so keys split on ".".
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
	c.Counter.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.Sentry.SetDefaults()
	c.Dashboard.SetDefaults()
}

// Validate checks every section and returns the first error.
func (c Config) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"server", c.Server.Validate},
		{"logging", c.Logging.Validate},
		{"counter", c.Counter.Validate},
		{"metrics", c.Metrics.Validate},
		{"mqtt", c.MQTT.Validate},
		{"sentry", c.Sentry.Validate},
		{"dashboard", c.Dashboard.Validate},
	}
	for _, ch := range checks {
		if err := ch.fn(); err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}
	}
	return nil
}
