package estimate

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCostInput() CostInput {
	return CostInput{
		BatteryCapacityKWh:    75,
		CurrentChargePercent:  20,
		TargetChargePercent:   80,
		Location:              LocationHome,
		TimeOfDay:             Evening,
		ChargingSpeed:         SpeedStandard,
		ElectricityRatePerKWh: 0.15,
	}
}

func TestChargingCostEstimator_Scenario(t *testing.T) {
	out, err := ChargingCostEstimator{}.Estimate(defaultCostInput())
	require.NoError(t, err)
	assert.InDelta(t, 45.0, out.EnergyNeededKWh, 1e-9)
	assert.InDelta(t, 0.21, out.CostPerKWh, 1e-9)
	assert.InDelta(t, 9.45, out.TotalCost, 1e-9)
	assert.InDelta(t, 6.08, out.ChargingTimeHours, 1e-9)
	assert.Equal(t, 365, out.ChargingTimeMinutes)
	assert.InDelta(t, 3.78, out.PeakHourSurchargeAmount, 1e-9)
}

func TestChargingCostEstimator_OffPeakHasNoSurcharge(t *testing.T) {
	in := defaultCostInput()
	in.TimeOfDay = Night
	in.Location = LocationHighway
	in.ChargingSpeed = SpeedSuperfast
	out, err := ChargingCostEstimator{}.Estimate(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.PeakHourSurchargeAmount)
	assert.InDelta(t, 0.432, out.CostPerKWh, 1e-9)
	assert.InDelta(t, 19.44, out.TotalCost, 1e-9)
	assert.Equal(t, 18, out.ChargingTimeMinutes)
	assert.InDelta(t, 0.3, out.ChargingTimeHours, 1e-9)
}

func TestChargingCostEstimator_TargetBelowCurrent(t *testing.T) {
	in := defaultCostInput()
	in.CurrentChargePercent = 80
	in.TargetChargePercent = 20
	out, err := ChargingCostEstimator{}.Estimate(in)
	require.NoError(t, err)
	assert.InDelta(t, -45.0, out.EnergyNeededKWh, 1e-9)
	assert.InDelta(t, -9.45, out.TotalCost, 1e-9)
	assert.Equal(t, 0.0, out.PeakHourSurchargeAmount)
}

func TestChargingCostEstimator_NegativeTieRoundsUp(t *testing.T) {
	in := defaultCostInput()
	in.BatteryCapacityKWh = 50
	in.CurrentChargePercent = 50.5
	in.TargetChargePercent = 50
	out, err := ChargingCostEstimator{}.Estimate(in)
	require.NoError(t, err)
	assert.Equal(t, -0.2, out.EnergyNeededKWh)
	assert.Equal(t, -0.05, out.TotalCost)
	assert.Equal(t, -2, out.ChargingTimeMinutes)
	assert.Equal(t, -0.03, out.ChargingTimeHours)
}

func TestChargingCostEstimator_UnknownCategories(t *testing.T) {
	cases := []struct {
		field string
		edit  func(*CostInput)
	}{
		{"location", func(in *CostInput) { in.Location = "garage" }},
		{"time_of_day", func(in *CostInput) { in.TimeOfDay = "" }},
		{"charging_speed", func(in *CostInput) { in.ChargingSpeed = "ludicrous" }},
		{"electricity_rate_per_kwh", func(in *CostInput) { in.ElectricityRatePerKWh = 0 }},
		{"target_charge_percent", func(in *CostInput) { in.TargetChargePercent = 101 }},
	}
	for _, c := range cases {
		in := defaultCostInput()
		c.edit(&in)
		_, err := ChargingCostEstimator{}.Estimate(in)
		var ie *InvalidInputError
		require.True(t, errors.As(err, &ie), "field %s", c.field)
		assert.Equal(t, c.field, ie.Field)
	}
}

func TestChargingCostEstimator_SurchargeNeverNegative(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	locations := []ChargeLocation{LocationHome, LocationWorkplace, LocationPublic, LocationHighway}
	times := []TimeOfDay{Morning, Afternoon, Evening, Night}
	speeds := []ChargingSpeed{SpeedSlow, SpeedStandard, SpeedFast, SpeedSuperfast}
	for i := 0; i < 500; i++ {
		in := CostInput{
			BatteryCapacityKWh:    1 + r.Float64()*200,
			CurrentChargePercent:  r.Float64() * 100,
			TargetChargePercent:   r.Float64() * 100,
			Location:              locations[r.Intn(len(locations))],
			TimeOfDay:             times[r.Intn(len(times))],
			ChargingSpeed:         speeds[r.Intn(len(speeds))],
			ElectricityRatePerKWh: 0.01 + r.Float64(),
		}
		out, err := ChargingCostEstimator{}.Estimate(in)
		require.NoError(t, err)
		if out.PeakHourSurchargeAmount < 0 {
			t.Fatalf("negative surcharge for %+v", in)
		}
	}
}
