// Package dashboard runs the estimators with the side effects of the
// dashboard: simulated latency, the prediction counter, metrics, result
// publishing and error reporting. Side-effect failures never reach the
// caller.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/estimate"
	"github.com/kilianp07/ecoamp/core/logger"
	"github.com/kilianp07/ecoamp/core/metrics"
	"github.com/kilianp07/ecoamp/core/monitoring"
	"github.com/kilianp07/ecoamp/core/publish"
)

// Options configures a Dashboard. Every field is optional.
type Options struct {
	Counter   *counter.Counter
	Sink      metrics.MetricsSink
	Publisher publish.Publisher
	Monitor   monitoring.Monitor
	Logger    logger.Logger
	// Delays holds the simulated latency per tool; missing tools do not wait.
	Delays map[Tool]time.Duration
	// Sleep waits for a delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Now is the clock used for timestamps and the price estimator.
	Now func() time.Time
}

// Dashboard serves the five estimators.
type Dashboard struct {
	counter   *counter.Counter
	sink      metrics.MetricsSink
	publisher publish.Publisher
	monitor   monitoring.Monitor
	log       logger.Logger
	delays    map[Tool]time.Duration
	sleep     func(time.Duration)
	now       func() time.Time
	newID     func() string

	rangeEst estimate.RangeEstimator
	sohEst   estimate.SoHPredictor
	costEst  estimate.ChargingCostEstimator
	regenEst estimate.RegenEnergyEstimator
	priceEst estimate.PriceEstimator
}

// New builds a Dashboard, filling unset options with no-op implementations.
func New(opts Options) *Dashboard {
	d := &Dashboard{
		counter:   opts.Counter,
		sink:      opts.Sink,
		publisher: opts.Publisher,
		monitor:   opts.Monitor,
		log:       opts.Logger,
		delays:    opts.Delays,
		sleep:     opts.Sleep,
		now:       opts.Now,
		newID:     uuid.NewString,
	}
	if d.counter == nil {
		d.counter = counter.New(counter.NewMemoryBackend(), opts.Logger)
	}
	if d.sink == nil {
		d.sink = metrics.NopSink{}
	}
	if d.publisher == nil {
		d.publisher = publish.NopPublisher{}
	}
	if d.monitor == nil {
		d.monitor = monitoring.NopMonitor{}
	}
	if d.log == nil {
		d.log = logger.NopLogger{}
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if d.now == nil {
		d.now = time.Now
	}
	d.priceEst = estimate.PriceEstimator{Now: d.now}
	return d
}

// Range estimates the driving range. A successful estimate increments the
// prediction counter.
func (d *Dashboard) Range(ctx context.Context, in estimate.RangeInput) (estimate.RangeOutput, error) {
	out, err := run(ctx, d, ToolRange, in, d.rangeEst.Estimate)
	if err == nil {
		d.counter.Increment(ctx)
	}
	return out, err
}

// SoH predicts the battery state of health.
func (d *Dashboard) SoH(ctx context.Context, in estimate.SoHInput) (estimate.SoHOutput, error) {
	return run(ctx, d, ToolSoH, in, d.sohEst.Estimate)
}

// Cost forecasts the cost of a charging session.
func (d *Dashboard) Cost(ctx context.Context, in estimate.CostInput) (estimate.CostOutput, error) {
	return run(ctx, d, ToolCost, in, d.costEst.Estimate)
}

// Regen estimates energy recovered by regenerative braking.
func (d *Dashboard) Regen(ctx context.Context, in estimate.RegenInput) (estimate.RegenOutput, error) {
	return run(ctx, d, ToolRegen, in, d.regenEst.Estimate)
}

// Price estimates the market value of a used EV.
func (d *Dashboard) Price(ctx context.Context, in estimate.PriceInput) (estimate.PriceOutput, error) {
	return run(ctx, d, ToolPrice, in, d.priceEst.Estimate)
}

// Summary is the dashboard landing data.
type Summary struct {
	Tools           []ToolInfo `json:"tools"`
	PredictionCount int64      `json:"prediction_count"`
	Formatted       string     `json:"prediction_count_formatted"`
}

// Summary returns the tool catalogue with the current prediction count.
func (d *Dashboard) Summary(ctx context.Context) Summary {
	n := d.counter.Get(ctx)
	return Summary{Tools: Catalogue(), PredictionCount: n, Formatted: counter.Format(n)}
}

// Counter exposes the prediction counter.
func (d *Dashboard) Counter() *counter.Counter { return d.counter }

func run[I, O any](ctx context.Context, d *Dashboard, tool Tool, in I, est func(I) (O, error)) (O, error) {
	id := d.newID()
	start := d.now()
	if delay := d.delays[tool]; delay > 0 {
		d.sleep(delay)
	}
	out, err := est(in)
	dur := d.now().Sub(start)

	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, estimate.ErrInvalidInput):
		outcome = metrics.OutcomeInvalid
	case err != nil:
		outcome = metrics.OutcomeError
		d.monitor.CaptureException(err, map[string]string{"tool": string(tool), "request_id": id})
	}
	if rerr := d.sink.RecordEstimate(metrics.EstimateEvent{
		RequestID: id,
		Tool:      string(tool),
		Outcome:   outcome,
		Duration:  dur,
		Time:      start,
	}); rerr != nil {
		d.log.Warnf("record %s estimate: %v", tool, rerr)
	}
	if err != nil {
		d.log.Debugw("estimate rejected", map[string]any{"tool": string(tool), "request_id": id, "error": err.Error()})
		return out, err
	}

	res := publish.Result{
		RequestID:  id,
		Tool:       string(tool),
		Input:      in,
		Output:     out,
		DurationMS: dur.Milliseconds(),
		Timestamp:  start,
	}
	if perr := d.publisher.Publish(ctx, res); perr != nil {
		d.log.Warnf("publish %s result %s: %v", tool, id, perr)
	}
	d.log.Debugw("estimate served", map[string]any{"tool": string(tool), "request_id": id, "duration_ms": dur.Milliseconds()})
	return out, nil
}
