package counter

import "github.com/kilianp07/ecoamp/core/factory"

var backendRegistry = factory.NewRegistry[Backend]()

func init() {
	backendRegistry.MustRegister("memory", func(map[string]any) (Backend, error) {
		return NewMemoryBackend(), nil
	})
}

// RegisterBackend adds a backend factory identified by name.
func RegisterBackend(name string, f factory.Factory[Backend]) error {
	return backendRegistry.Register(name, f)
}

// NewBackend creates the backend described by cfg. An empty type selects memory.
func NewBackend(cfg factory.ModuleConfig) (Backend, error) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
	return backendRegistry.Create(cfg)
}
