package sweep

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RangeBatteryLevel(t *testing.T) {
	res, err := Run(Request{Tool: "range", Param: "battery_level_percent", From: 0, To: 100, Steps: 5})
	require.NoError(t, err)

	assert.Equal(t, "estimated_km", res.Metric)
	require.Len(t, res.Points, 5)
	got := make([]float64, len(res.Points))
	for i, p := range res.Points {
		got[i] = p.Result
	}
	assert.Equal(t, []float64{0, 67, 135, 202, 270}, got)
	assert.Equal(t, 5, res.Valid)
	assert.Equal(t, 0.0, res.Min)
	assert.Equal(t, 270.0, res.Max)
	assert.InDelta(t, 134.8, res.Mean, 1e-9)
	assert.InDelta(t, 2.7, res.Slope, 1e-6)
}

func TestRun_InvalidPointsAreReported(t *testing.T) {
	res, err := Run(Request{Tool: "range", Param: "wind_speed_kmh", From: -10, To: 10, Steps: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Valid)
	assert.Contains(t, res.Points[0].Err, "wind_speed_kmh")
	assert.Empty(t, res.Points[1].Err)
	assert.Greater(t, res.Points[1].Result, res.Points[2].Result)
}

func TestRun_SinglePoint(t *testing.T) {
	res, err := Run(Request{Tool: "cost", Param: "electricity_rate_per_kwh", From: 0.15, To: 1, Steps: 1})
	require.NoError(t, err)
	require.Len(t, res.Points, 1)
	assert.Equal(t, 0.15, res.Points[0].Value)
	assert.Equal(t, 9.45, res.Points[0].Result)
	assert.Zero(t, res.Slope)
}

func TestRun_PriceUsesClock(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	res, err := Run(Request{Tool: "price", Param: "year", From: 2021, To: 2026, Steps: 6, Now: now})
	require.NoError(t, err)

	assert.Equal(t, 18161.0, res.Points[0].Result)
	assert.Empty(t, res.Points[4].Err)
	assert.NotEmpty(t, res.Points[5].Err, "future year is rejected")
	assert.Equal(t, 5, res.Valid)
}

func TestRun_BadRequests(t *testing.T) {
	_, err := Run(Request{Tool: "weather", Param: "x", Steps: 2})
	assert.Error(t, err)

	_, err = Run(Request{Tool: "soh", Param: "colour", Steps: 2})
	assert.True(t, errors.Is(err, ErrUnknownParam))

	_, err = Run(Request{Tool: "soh", Param: "cycle_count", Steps: 0})
	assert.Error(t, err)

	_, err = Run(Request{Tool: "regen", Param: "speed_kmh", Steps: MaxSteps + 1})
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	p, err := Params("cost")
	require.NoError(t, err)
	assert.Equal(t, []string{"battery_capacity_kwh", "current_charge_percent", "electricity_rate_per_kwh", "target_charge_percent"}, p)

	_, err = Params("nope")
	assert.Error(t, err)
}
