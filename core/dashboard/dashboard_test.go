package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ecoamp/core/counter"
	"github.com/kilianp07/ecoamp/core/estimate"
	"github.com/kilianp07/ecoamp/core/metrics"
	"github.com/kilianp07/ecoamp/core/publish"
)

type recordSink struct {
	mu     sync.Mutex
	events []metrics.EstimateEvent
	err    error
}

func (r *recordSink) RecordEstimate(ev metrics.EstimateEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

type recordPublisher struct {
	results []publish.Result
	err     error
}

func (r *recordPublisher) Publish(_ context.Context, res publish.Result) error {
	r.results = append(r.results, res)
	return r.err
}

func (r *recordPublisher) Close() error { return nil }

type recordMonitor struct {
	errs []error
}

func (r *recordMonitor) CaptureException(err error, _ map[string]string) {
	r.errs = append(r.errs, err)
}
func (r *recordMonitor) Recover()            {}
func (r *recordMonitor) Flush(time.Duration) {}

type fixture struct {
	dash    *Dashboard
	backend *counter.MemoryBackend
	sink    *recordSink
	pub     *recordPublisher
	mon     *recordMonitor
	slept   []time.Duration
}

func newFixture(t *testing.T, delays map[Tool]time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		backend: counter.NewMemoryBackend(),
		sink:    &recordSink{},
		pub:     &recordPublisher{},
		mon:     &recordMonitor{},
	}
	c := counter.New(f.backend, nil)
	t.Cleanup(func() { _ = c.Close() })
	f.dash = New(Options{
		Counter:   c,
		Sink:      f.sink,
		Publisher: f.pub,
		Monitor:   f.mon,
		Delays:    delays,
		Sleep:     func(d time.Duration) { f.slept = append(f.slept, d) },
		Now:       func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	f.dash.newID = func() string { return "req-1" }
	return f
}

func rangeInput() estimate.RangeInput {
	return estimate.RangeInput{
		BatteryLevelPercent:   80,
		BatteryCapacityKWh:    75,
		TemperatureC:          20,
		WindSpeedKmh:          10,
		DrivingAggressiveness: 50,
		VehicleWeightKg:       1800,
	}
}

func TestDashboard_RangeIncrementsCounter(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ch := f.dash.Counter().Subscribe()
	out, err := f.dash.Range(ctx, rangeInput())
	require.NoError(t, err)
	assert.Equal(t, 216, out.EstimatedKm)
	assert.Equal(t, int64(1001), f.dash.Counter().Get(ctx))

	select {
	case ev := <-ch:
		assert.Equal(t, int64(1001), ev.Value)
	case <-time.After(time.Second):
		t.Fatal("no counter event")
	}

	require.Len(t, f.pub.results, 1)
	assert.Equal(t, "range", f.pub.results[0].Tool)
	assert.Equal(t, "req-1", f.pub.results[0].RequestID)
	assert.Equal(t, out, f.pub.results[0].Output)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, metrics.OutcomeOK, f.sink.events[0].Outcome)
}

func TestDashboard_InvalidRangeLeavesCounter(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	in := rangeInput()
	in.BatteryCapacityKWh = 0
	_, err := f.dash.Range(ctx, in)

	var iie *estimate.InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "battery_capacity_kwh", iie.Field)
	assert.Equal(t, counter.DefaultValue, f.dash.Counter().Get(ctx))
	assert.Empty(t, f.pub.results)
	assert.Empty(t, f.mon.errs, "invalid input is not reported")
	require.Len(t, f.sink.events, 1)
	assert.Equal(t, metrics.OutcomeInvalid, f.sink.events[0].Outcome)
}

func TestDashboard_OtherToolsDoNotCount(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.dash.SoH(ctx, estimate.SoHInput{BatteryAgeMonths: 24, CycleCount: 500, AverageTempC: 25, ChargingSpeedKw: 50, DepthOfDischargePercent: 80, DailyIdleHours: 10})
	require.NoError(t, err)
	_, err = f.dash.Cost(ctx, estimate.CostInput{BatteryCapacityKWh: 75, CurrentChargePercent: 20, TargetChargePercent: 80, Location: estimate.LocationHome, TimeOfDay: estimate.Evening, ChargingSpeed: estimate.SpeedStandard, ElectricityRatePerKWh: 0.15})
	require.NoError(t, err)
	_, err = f.dash.Regen(ctx, estimate.RegenInput{VehicleWeightKg: 1800, SpeedKmh: 50, BrakeIntensityPercent: 70, TerrainType: estimate.TerrainMixed, RegenEfficiencyPercent: 85, TripDistanceKm: 100, ElevationChangeM: 200})
	require.NoError(t, err)
	price, err := f.dash.Price(ctx, estimate.PriceInput{Make: estimate.MakeTesla, Model: "model_3", Year: 2021, MileageKm: 30000, BatteryHealthPercent: 92, Condition: estimate.ConditionGood, Location: estimate.MarketUrban, OriginalPriceAmount: 45000, BatteryCapacityKWh: 75})
	require.NoError(t, err)
	assert.Equal(t, 18161.0, price.EstimatedPrice, "price uses the dashboard clock")

	assert.Equal(t, counter.DefaultValue, f.dash.Counter().Get(ctx))
	assert.Len(t, f.pub.results, 4)
	assert.Len(t, f.sink.events, 4)
}

func TestDashboard_SideEffectFailuresAreSwallowed(t *testing.T) {
	f := newFixture(t, nil)
	f.pub.err = errors.New("broker down")
	f.sink.err = errors.New("influx down")

	out, err := f.dash.Range(context.Background(), rangeInput())
	require.NoError(t, err)
	assert.Equal(t, 216, out.EstimatedKm)
	assert.Len(t, f.pub.results, 1)
	assert.Empty(t, f.mon.errs, "the publisher reports its own failures")
}

func TestDashboard_CounterWriteFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.SetErr(errors.New("disk full"))

	out, err := f.dash.Range(context.Background(), rangeInput())
	require.NoError(t, err)
	assert.Equal(t, 216, out.EstimatedKm)
	assert.Equal(t, counter.DefaultValue, f.dash.Counter().Get(context.Background()))
}

func TestDashboard_Delays(t *testing.T) {
	f := newFixture(t, DefaultDelays())

	_, err := f.dash.Cost(context.Background(), estimate.CostInput{BatteryCapacityKWh: 75, CurrentChargePercent: 20, TargetChargePercent: 80, Location: estimate.LocationHome, TimeOfDay: estimate.Evening, ChargingSpeed: estimate.SpeedStandard, ElectricityRatePerKWh: 0.15})
	require.NoError(t, err)
	_, err = f.dash.Range(context.Background(), estimate.RangeInput{})
	require.Error(t, err)

	assert.Equal(t, []time.Duration{1800 * time.Millisecond, 2000 * time.Millisecond}, f.slept)
}

func TestDashboard_Summary(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.backend.Save(ctx, 2500))

	s := f.dash.Summary(ctx)
	assert.Equal(t, int64(2500), s.PredictionCount)
	assert.Equal(t, "3K+", s.Formatted)
	require.Len(t, s.Tools, 5)
	assert.Equal(t, ToolRange, s.Tools[0].Slug)
	assert.Equal(t, "Range Estimator", s.Tools[0].Title)
	assert.Equal(t, "Used EV Price Estimator", s.Tools[4].Title)
}

func TestNew_Defaults(t *testing.T) {
	d := New(Options{})
	out, err := d.Range(context.Background(), rangeInput())
	require.NoError(t, err)
	assert.Equal(t, 216, out.EstimatedKm)
	assert.Equal(t, int64(1001), d.Counter().Get(context.Background()))
}
