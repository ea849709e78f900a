// Package scenarios replays YAML scenarios through the dashboard and checks
// the estimator outputs and the prediction counter.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/ecoamp/core/dashboard"
)

// Step is one estimation call.
type Step struct {
	Tool  string         `yaml:"tool"`
	Input map[string]any `yaml:"input"`
	// Expected maps output JSON fields to their values.
	Expected map[string]any `yaml:"expected,omitempty"`
	// ErrorField names the field an invalid input must be rejected on.
	ErrorField string `yaml:"error_field,omitempty"`
}

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// Year pins the clock used by the price estimator.
	Year         int    `yaml:"year,omitempty"`
	StartCount   *int64 `yaml:"start_count,omitempty"`
	Steps        []Step `yaml:"steps"`
	ExpectCount  int64  `yaml:"expect_count"`
	ExpectFormat string `yaml:"expect_format,omitempty"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

func (sc Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	for i, st := range sc.Steps {
		if _, err := dashboard.ParseTool(st.Tool); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
