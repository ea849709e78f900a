package metrics

import (
	"context"

	"github.com/kilianp07/ecoamp/core/counter"
	coremetrics "github.com/kilianp07/ecoamp/core/metrics"
	coremon "github.com/kilianp07/ecoamp/core/monitoring"
)

// CounterSource emits an event after each successful counter increment.
type CounterSource interface {
	Subscribe() <-chan counter.Event
	Unsubscribe(<-chan counter.Event)
}

// StartCounterCollector subscribes to counter events and forwards each new
// value to sinks implementing CounterRecorder. The counter only grows, so a
// value below the highest one recorded is skipped. It stops when the context
// is canceled or the source closes its subscriptions.
func StartCounterCollector(ctx context.Context, src CounterSource, sink coremetrics.MetricsSink, mon coremon.Monitor) {
	if src == nil || sink == nil {
		return
	}
	rec, ok := sink.(coremetrics.CounterRecorder)
	if !ok {
		return
	}
	if mon == nil {
		mon = coremon.NopMonitor{}
	}
	sub := src.Subscribe()
	go func() {
		defer mon.Recover()
		defer src.Unsubscribe(sub)
		var high int64
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if ev.Value <= high {
					continue
				}
				high = ev.Value
				_ = rec.RecordPredictionCount(ev.Value)
			}
		}
	}()
}
