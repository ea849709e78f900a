package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ecoamp/core/counter"
	coremon "github.com/kilianp07/ecoamp/core/monitoring"
)

func TestStartCounterCollector(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	c := counter.New(counter.NewMemoryBackend(), nil)
	defer c.Close()
	StartCounterCollector(ctx, c, sink, coremon.NopMonitor{})

	assert.Eventually(t, func() bool {
		c.Increment(ctx)
		return testutil.ToFloat64(sink.count) >= 1001
	}, time.Second, 10*time.Millisecond)
}

func TestStartCounterCollector_ConcurrentIncrementsEndOnLatest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	c := counter.New(counter.NewMemoryBackend(), nil)
	defer c.Close()
	StartCounterCollector(ctx, c, sink, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				c.Increment(ctx)
			}
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(sink.count) == 1040
	}, time.Second, 10*time.Millisecond)
}

type replaySource struct {
	ch chan counter.Event
}

func (r *replaySource) Subscribe() <-chan counter.Event  { return r.ch }
func (r *replaySource) Unsubscribe(<-chan counter.Event) {}

func TestStartCounterCollector_SkipsStaleValues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	src := &replaySource{ch: make(chan counter.Event, 3)}
	src.ch <- counter.Event{Value: 1003}
	src.ch <- counter.Event{Value: 1002}
	close(src.ch)
	StartCounterCollector(ctx, src, sink, nil)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(sink.count) == 1003
	}, time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1003.0, testutil.ToFloat64(sink.count))
}
