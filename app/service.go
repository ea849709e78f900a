// Package app wires configuration into a running ecoamp service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/ecoamp/api/estimates"
	"github.com/kilianp07/ecoamp/config"
	"github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/dashboard"
	coremetrics "github.com/kilianp07/ecoamp/core/metrics"
	coremon "github.com/kilianp07/ecoamp/core/monitoring"
	"github.com/kilianp07/ecoamp/core/publish"
	_ "github.com/kilianp07/ecoamp/infra/counter"
	"github.com/kilianp07/ecoamp/infra/logger"
	"github.com/kilianp07/ecoamp/infra/metrics"
	"github.com/kilianp07/ecoamp/infra/monitoring"
	"github.com/kilianp07/ecoamp/infra/mqtt"
)

// Service owns the dashboard and its side-effect adapters.
type Service struct {
	Dashboard *dashboard.Dashboard
	Counter   *counter.Counter

	cfg       *config.Config
	sink      coremetrics.MetricsSink
	publisher publish.Publisher
	monitor   coremon.Monitor
	log       logger.Logger
}

// New creates a Service from the configuration. Network integrations are
// only contacted when enabled.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}

	backend, err := counter.NewBackend(cfg.Counter.Module())
	if err != nil {
		return nil, fmt.Errorf("counter backend: %w", err)
	}
	cnt := counter.New(backend, logger.New("counter"))

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = cnt.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	var pub publish.Publisher = publish.NopPublisher{}
	if cfg.MQTT.Enabled {
		p, err := mqtt.NewPublisher(cfg.MQTT, mon)
		if err != nil {
			_ = cnt.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = p
	}

	dash := dashboard.New(dashboard.Options{
		Counter:   cnt,
		Sink:      sink,
		Publisher: pub,
		Monitor:   mon,
		Logger:    logger.New("dashboard"),
		Delays:    cfg.Dashboard.Delays(),
	})
	return &Service{
		Dashboard: dash,
		Counter:   cnt,
		cfg:       cfg,
		sink:      sink,
		publisher: pub,
		monitor:   mon,
		log:       logg,
	}, nil
}

// Run serves the HTTP API and, when configured, the Prometheus endpoint.
// It blocks until the context is cancelled or a server fails.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartCounterCollector(ctx, s.Counter, s.sink, s.monitor)
	go s.logCounter(ctx)

	gin.SetMode(s.cfg.Server.Mode)
	router := estimates.NewRouter(s.Dashboard, logger.New("api"), s.monitor)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return estimates.Serve(ctx, s.cfg.Server.Addr, router, logger.New("api"))
	})
	if s.cfg.Metrics.PrometheusEnabled() {
		g.Go(func() error {
			return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr)
		})
	}
	s.log.Infof("ecoamp started, %d predictions served", s.Counter.Get(ctx))
	return g.Wait()
}

func (s *Service) logCounter(ctx context.Context) {
	defer s.monitor.Recover()
	sub := s.Counter.Subscribe()
	defer s.Counter.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			s.log.Debugw("prediction counted", map[string]any{"count": ev.Value, "formatted": counter.Format(ev.Value)})
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if err := s.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("publisher: %w", err))
	}
	if err := coremetrics.CloseSink(s.sink); err != nil {
		errs = append(errs, fmt.Errorf("metrics sink: %w", err))
	}
	if err := s.Counter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("counter: %w", err))
	}
	s.monitor.Flush(2 * time.Second)
	return errors.Join(errs...)
}
