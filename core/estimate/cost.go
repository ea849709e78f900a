package estimate

import "math"

// ChargeLocation is where the session takes place.
type ChargeLocation string

const (
	LocationHome      ChargeLocation = "home"
	LocationWorkplace ChargeLocation = "workplace"
	LocationPublic    ChargeLocation = "public"
	LocationHighway   ChargeLocation = "highway"
)

// TimeOfDay is the tariff period of the session.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// ChargingSpeed is the charger class.
type ChargingSpeed string

const (
	SpeedSlow      ChargingSpeed = "slow"
	SpeedStandard  ChargingSpeed = "standard"
	SpeedFast      ChargingSpeed = "fast"
	SpeedSuperfast ChargingSpeed = "superfast"
)

type chargerClass struct {
	multiplier float64
	powerKW    float64
}

var (
	locationMultipliers = map[ChargeLocation]float64{
		LocationHome:      1.0,
		LocationPublic:    1.5,
		LocationHighway:   2.0,
		LocationWorkplace: 0.8,
	}
	timeMultipliers = map[TimeOfDay]float64{
		Morning:   1.2,
		Afternoon: 1.0,
		Evening:   1.4,
		Night:     0.8,
	}
	chargerClasses = map[ChargingSpeed]chargerClass{
		SpeedSlow:      {multiplier: 0.9, powerKW: 3.7},
		SpeedStandard:  {multiplier: 1.0, powerKW: 7.4},
		SpeedFast:      {multiplier: 1.3, powerKW: 50},
		SpeedSuperfast: {multiplier: 1.8, powerKW: 150},
	}
)

// CostInput describes a charging session.
type CostInput struct {
	BatteryCapacityKWh    float64        `json:"battery_capacity_kwh"`
	CurrentChargePercent  float64        `json:"current_charge_percent"`
	TargetChargePercent   float64        `json:"target_charge_percent"`
	Location              ChargeLocation `json:"location"`
	TimeOfDay             TimeOfDay      `json:"time_of_day"`
	ChargingSpeed         ChargingSpeed  `json:"charging_speed"`
	ElectricityRatePerKWh float64        `json:"electricity_rate_per_kwh"`
}

// CostOutput is the forecast for the session.
type CostOutput struct {
	TotalCost               float64 `json:"total_cost"`
	CostPerKWh              float64 `json:"cost_per_kwh"`
	ChargingTimeHours       float64 `json:"charging_time_hours"`
	ChargingTimeMinutes     int     `json:"charging_time_minutes"`
	EnergyNeededKWh         float64 `json:"energy_needed_kwh"`
	PeakHourSurchargeAmount float64 `json:"peak_hour_surcharge_amount"`
}

// ChargingCostEstimator forecasts cost and duration of a charging session.
type ChargingCostEstimator struct{}

// Estimate prices the energy between the current and target charge. A target
// below the current charge is accepted and yields negative energy and cost;
// the peak surcharge never goes below zero.
func (ChargingCostEstimator) Estimate(in CostInput) (CostOutput, error) {
	var c check
	c.positive("battery_capacity_kwh", in.BatteryCapacityKWh)
	c.between("current_charge_percent", in.CurrentChargePercent, 0, 100)
	c.between("target_charge_percent", in.TargetChargePercent, 0, 100)
	c.positive("electricity_rate_per_kwh", in.ElectricityRatePerKWh)
	locationMult := lookup(&c, "location", locationMultipliers, in.Location)
	timeMult := lookup(&c, "time_of_day", timeMultipliers, in.TimeOfDay)
	charger := lookup(&c, "charging_speed", chargerClasses, in.ChargingSpeed)
	if c.err != nil {
		return CostOutput{}, c.err
	}

	energy := ((in.TargetChargePercent - in.CurrentChargePercent) / 100) * in.BatteryCapacityKWh
	costPerKWh := in.ElectricityRatePerKWh * locationMult * timeMult * charger.multiplier
	total := energy * costPerKWh
	minutes := roundInt(energy / charger.powerKW * 60)
	surcharge := math.Max(0, total*math.Max(0, timeMult-1.0))

	return CostOutput{
		TotalCost:               roundTo(total, 2),
		CostPerKWh:              roundTo(costPerKWh, 3),
		ChargingTimeHours:       roundTo(float64(minutes)/60, 2),
		ChargingTimeMinutes:     minutes,
		EnergyNeededKWh:         roundTo(energy, 1),
		PeakHourSurchargeAmount: roundTo(surcharge, 2),
	}, nil
}
