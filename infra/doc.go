// Package infra holds the ecoamp adapters: the SQLite counter backend,
// metrics sinks, the MQTT result publisher and the Sentry monitor.
// Subpackages depend on the ports declared under core and never on each other.
package infra
