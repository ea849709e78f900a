package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ecoamp/config"
	"github.com/kilianp07/ecoamp/core/estimate"
	"github.com/kilianp07/ecoamp/core/factory"
	coremetrics "github.com/kilianp07/ecoamp/core/metrics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.Mode = "test"
	cfg.Counter.Conf = map[string]any{"path": filepath.Join(t.TempDir(), "counter.db")}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNew_PersistsRangePredictions(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	svc, err := New(cfg)
	require.NoError(t, err)
	_, err = svc.Dashboard.Range(ctx, estimate.RangeInput{
		BatteryLevelPercent: 80, BatteryCapacityKWh: 75, TemperatureC: 20,
		WindSpeedKmh: 10, DrivingAggressiveness: 50, VehicleWeightKg: 1800,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	svc, err = New(cfg)
	require.NoError(t, err)
	defer svc.Close()
	assert.Equal(t, int64(1001), svc.Counter.Get(ctx))
}

func TestNew_UnknownBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.Counter.Type = "etcd"
	_, err := New(cfg)
	assert.ErrorContains(t, err, "counter backend")

	cfg = testConfig(t)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "statsd"}}
	_, err = New(cfg)
	assert.ErrorContains(t, err, "metrics sink")
}

func TestRun_StopsOnCancel(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}

type closeCountingSink struct {
	coremetrics.NopSink
	closed int
}

func (c *closeCountingSink) Close() error {
	c.closed++
	return nil
}

func TestClose_ClosesMetricsSink(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	sink := &closeCountingSink{}
	svc.sink = sink

	require.NoError(t, svc.Close())
	assert.Equal(t, 1, sink.closed)
}
