package estimate

import "math"

// RangeInput is a snapshot of the battery and driving conditions.
type RangeInput struct {
	BatteryLevelPercent   float64 `json:"battery_level_percent"`
	BatteryCapacityKWh    float64 `json:"battery_capacity_kwh"`
	TemperatureC          float64 `json:"temperature_c"`
	WindSpeedKmh          float64 `json:"wind_speed_kmh"`
	DrivingAggressiveness float64 `json:"driving_aggressiveness"`
	VehicleWeightKg       float64 `json:"vehicle_weight_kg"`
}

// RangeOutput holds the remaining driving distance.
type RangeOutput struct {
	EstimatedKm int `json:"estimated_km"`
}

// Miles converts the estimate using the 0.62 factor shown on the dashboard.
func (o RangeOutput) Miles() int { return roundInt(float64(o.EstimatedKm) * 0.62) }

// HoursAt80Kmh is the driving time at a steady 80 km/h.
func (o RangeOutput) HoursAt80Kmh() int { return roundInt(float64(o.EstimatedKm) / 80) }

// RangeEstimator computes remaining range from battery state and conditions.
type RangeEstimator struct{}

// Estimate applies the temperature, wind, driving style and weight factors to
// the base range of 5 km per kWh. Factors are not clamped individually; only
// the final distance floors at zero.
func (RangeEstimator) Estimate(in RangeInput) (RangeOutput, error) {
	if err := in.validate(); err != nil {
		return RangeOutput{}, err
	}
	baseKm := (in.BatteryLevelPercent / 100) * in.BatteryCapacityKWh * 5
	tempFactor := 1 - math.Abs(in.TemperatureC-20)*0.01
	windFactor := 1 - in.WindSpeedKmh/100
	styleFactor := 1 - (in.DrivingAggressiveness/100)*0.3
	weightFactor := 1 - ((in.VehicleWeightKg-1500)/1000)*0.2

	km := roundInt(baseKm * tempFactor * windFactor * styleFactor * weightFactor)
	if km < 0 {
		km = 0
	}
	return RangeOutput{EstimatedKm: km}, nil
}

func (in RangeInput) validate() error {
	var c check
	c.between("battery_level_percent", in.BatteryLevelPercent, 0, 100)
	c.positive("battery_capacity_kwh", in.BatteryCapacityKWh)
	c.finite("temperature_c", in.TemperatureC)
	c.nonNegative("wind_speed_kmh", in.WindSpeedKmh)
	c.between("driving_aggressiveness", in.DrivingAggressiveness, 0, 100)
	c.positive("vehicle_weight_kg", in.VehicleWeightKg)
	return c.err
}
