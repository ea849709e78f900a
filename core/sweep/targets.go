package sweep

import (
	"math"
	"time"

	"github.com/kilianp07/ecoamp/core/estimate"
)

var targets = map[string]target{
	"range": toolTarget[estimate.RangeInput]{
		name: "estimated_km",
		base: func() estimate.RangeInput {
			return estimate.RangeInput{
				BatteryLevelPercent:   80,
				BatteryCapacityKWh:    75,
				TemperatureC:          20,
				WindSpeedKmh:          10,
				DrivingAggressiveness: 50,
				VehicleWeightKg:       1800,
			}
		},
		setters: map[string]func(*estimate.RangeInput, float64){
			"battery_level_percent":  func(in *estimate.RangeInput, v float64) { in.BatteryLevelPercent = v },
			"battery_capacity_kwh":   func(in *estimate.RangeInput, v float64) { in.BatteryCapacityKWh = v },
			"temperature_c":          func(in *estimate.RangeInput, v float64) { in.TemperatureC = v },
			"wind_speed_kmh":         func(in *estimate.RangeInput, v float64) { in.WindSpeedKmh = v },
			"driving_aggressiveness": func(in *estimate.RangeInput, v float64) { in.DrivingAggressiveness = v },
			"vehicle_weight_kg":      func(in *estimate.RangeInput, v float64) { in.VehicleWeightKg = v },
		},
		run: func(in estimate.RangeInput, _ func() time.Time) (float64, error) {
			out, err := estimate.RangeEstimator{}.Estimate(in)
			return float64(out.EstimatedKm), err
		},
	},
	"soh": toolTarget[estimate.SoHInput]{
		name: "current_soh_percent",
		base: func() estimate.SoHInput {
			return estimate.SoHInput{
				BatteryAgeMonths:        24,
				CycleCount:              500,
				AverageTempC:            25,
				ChargingSpeedKw:         50,
				DepthOfDischargePercent: 80,
				DailyIdleHours:          10,
			}
		},
		setters: map[string]func(*estimate.SoHInput, float64){
			"battery_age_months":         func(in *estimate.SoHInput, v float64) { in.BatteryAgeMonths = v },
			"cycle_count":                func(in *estimate.SoHInput, v float64) { in.CycleCount = v },
			"average_temp_c":             func(in *estimate.SoHInput, v float64) { in.AverageTempC = v },
			"charging_speed_kw":          func(in *estimate.SoHInput, v float64) { in.ChargingSpeedKw = v },
			"depth_of_discharge_percent": func(in *estimate.SoHInput, v float64) { in.DepthOfDischargePercent = v },
			"daily_idle_hours":           func(in *estimate.SoHInput, v float64) { in.DailyIdleHours = v },
		},
		run: func(in estimate.SoHInput, _ func() time.Time) (float64, error) {
			out, err := estimate.SoHPredictor{}.Estimate(in)
			return out.CurrentSoHPercent, err
		},
	},
	"cost": toolTarget[estimate.CostInput]{
		name: "total_cost",
		base: func() estimate.CostInput {
			return estimate.CostInput{
				BatteryCapacityKWh:    75,
				CurrentChargePercent:  20,
				TargetChargePercent:   80,
				Location:              estimate.LocationHome,
				TimeOfDay:             estimate.Evening,
				ChargingSpeed:         estimate.SpeedStandard,
				ElectricityRatePerKWh: 0.15,
			}
		},
		setters: map[string]func(*estimate.CostInput, float64){
			"battery_capacity_kwh":     func(in *estimate.CostInput, v float64) { in.BatteryCapacityKWh = v },
			"current_charge_percent":   func(in *estimate.CostInput, v float64) { in.CurrentChargePercent = v },
			"target_charge_percent":    func(in *estimate.CostInput, v float64) { in.TargetChargePercent = v },
			"electricity_rate_per_kwh": func(in *estimate.CostInput, v float64) { in.ElectricityRatePerKWh = v },
		},
		run: func(in estimate.CostInput, _ func() time.Time) (float64, error) {
			out, err := estimate.ChargingCostEstimator{}.Estimate(in)
			return out.TotalCost, err
		},
	},
	"regen": toolTarget[estimate.RegenInput]{
		name: "energy_recovered_kwh",
		base: func() estimate.RegenInput {
			return estimate.RegenInput{
				VehicleWeightKg:        1800,
				SpeedKmh:               50,
				BrakeIntensityPercent:  70,
				TerrainType:            estimate.TerrainMixed,
				RegenEfficiencyPercent: 85,
				TripDistanceKm:         100,
				ElevationChangeM:       200,
			}
		},
		setters: map[string]func(*estimate.RegenInput, float64){
			"vehicle_weight_kg":        func(in *estimate.RegenInput, v float64) { in.VehicleWeightKg = v },
			"speed_kmh":                func(in *estimate.RegenInput, v float64) { in.SpeedKmh = v },
			"brake_intensity_percent":  func(in *estimate.RegenInput, v float64) { in.BrakeIntensityPercent = v },
			"regen_efficiency_percent": func(in *estimate.RegenInput, v float64) { in.RegenEfficiencyPercent = v },
			"trip_distance_km":         func(in *estimate.RegenInput, v float64) { in.TripDistanceKm = v },
			"elevation_change_m":       func(in *estimate.RegenInput, v float64) { in.ElevationChangeM = v },
		},
		run: func(in estimate.RegenInput, _ func() time.Time) (float64, error) {
			out, err := estimate.RegenEnergyEstimator{}.Estimate(in)
			return out.EnergyRecoveredKWh, err
		},
	},
	"price": toolTarget[estimate.PriceInput]{
		name: "estimated_price",
		base: func() estimate.PriceInput {
			return estimate.PriceInput{
				Make:                 estimate.MakeTesla,
				Model:                "model_3",
				Year:                 2021,
				MileageKm:            30000,
				BatteryHealthPercent: 92,
				Condition:            estimate.ConditionGood,
				Location:             estimate.MarketUrban,
				OriginalPriceAmount:  45000,
				BatteryCapacityKWh:   75,
			}
		},
		setters: map[string]func(*estimate.PriceInput, float64){
			"year":                   func(in *estimate.PriceInput, v float64) { in.Year = int(math.Round(v)) },
			"mileage_km":             func(in *estimate.PriceInput, v float64) { in.MileageKm = v },
			"battery_health_percent": func(in *estimate.PriceInput, v float64) { in.BatteryHealthPercent = v },
			"original_price_amount":  func(in *estimate.PriceInput, v float64) { in.OriginalPriceAmount = v },
			"battery_capacity_kwh":   func(in *estimate.PriceInput, v float64) { in.BatteryCapacityKWh = v },
		},
		run: func(in estimate.PriceInput, now func() time.Time) (float64, error) {
			out, err := estimate.PriceEstimator{Now: now}.Estimate(in)
			return out.EstimatedPrice, err
		},
	},
}
