package dashboard

import (
	"fmt"
	"time"

	"github.com/kilianp07/ecoamp/core/estimate"
)

// Tool identifies one of the five estimators.
type Tool string

const (
	ToolRange Tool = "range"
	ToolSoH   Tool = "soh"
	ToolCost  Tool = "cost"
	ToolRegen Tool = "regen"
	ToolPrice Tool = "price"
)

// Tools lists every tool in dashboard order.
var Tools = []Tool{ToolRange, ToolSoH, ToolCost, ToolRegen, ToolPrice}

// ParseTool returns the Tool named s.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &estimate.InvalidInputError{Field: "tool", Value: s, Reason: "unknown tool"}
}

// ToolInfo describes a tool on the dashboard.
type ToolInfo struct {
	Slug        Tool   `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var catalogue = map[Tool]ToolInfo{
	ToolRange: {ToolRange, "Range Estimator", "Predict driving range based on battery status, weather, and driving patterns"},
	ToolSoH:   {ToolSoH, "SoH Predictor", "Analyze battery State of Health using ML algorithms"},
	ToolCost:  {ToolCost, "Charging Cost Forecaster", "Predict charging costs based on location and time"},
	ToolRegen: {ToolRegen, "Regen Energy Predictor", "Estimate energy recovery potential from regenerative braking"},
	ToolPrice: {ToolPrice, "Used EV Price Estimator", "Predict market value of used electric vehicles"},
}

// Catalogue returns the tool descriptions in dashboard order.
func Catalogue() []ToolInfo {
	out := make([]ToolInfo, len(Tools))
	for i, t := range Tools {
		out[i] = catalogue[t]
	}
	return out
}

// DefaultDelays returns the simulated processing time of each tool.
func DefaultDelays() map[Tool]time.Duration {
	return map[Tool]time.Duration{
		ToolRange: 2000 * time.Millisecond,
		ToolSoH:   2500 * time.Millisecond,
		ToolCost:  1800 * time.Millisecond,
		ToolRegen: 2200 * time.Millisecond,
		ToolPrice: 2500 * time.Millisecond,
	}
}

// Config controls the dashboard behaviour.
type Config struct {
	SimulateLatency bool    `json:"simulate_latency"`
	LatencyScale    float64 `json:"latency_scale"`
}

// SetDefaults applies default values.
func (c *Config) SetDefaults() {
	if c.LatencyScale == 0 {
		c.LatencyScale = 1
	}
}

// Validate checks the latency scale.
func (c Config) Validate() error {
	if c.LatencyScale < 0 {
		return fmt.Errorf("dashboard.latency_scale must be >= 0, got %v", c.LatencyScale)
	}
	return nil
}

// Delays returns the per-tool latency the config asks for, or nil when
// simulation is off.
func (c Config) Delays() map[Tool]time.Duration {
	if !c.SimulateLatency {
		return nil
	}
	out := DefaultDelays()
	for t, d := range out {
		out[t] = time.Duration(float64(d) * c.LatencyScale)
	}
	return out
}
