// Package factory provides a small generic registry used to build pluggable
// components, such as counter backends and metrics sinks, from configuration.
// A component is described by a type string and a map of raw settings which
// the registered factory decodes into its own typed struct.
//
// Example usage:
//
//	reg := factory.NewRegistry[counter.Backend]()
//	_ = reg.Register("memory", func(map[string]any) (counter.Backend, error) {
//	    return counter.NewMemoryBackend(), nil
//	})
//	b, err := reg.Create(factory.ModuleConfig{Type: "memory"})
package factory
