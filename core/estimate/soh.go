package estimate

import "math"

// HealthStatus is the qualitative battery health label.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

var recommendations = map[HealthStatus]string{
	HealthExcellent: "Battery is in excellent condition. Continue current charging practices.",
	HealthGood:      "Battery health is good. Consider optimizing charging habits for longevity.",
	HealthFair:      "Battery showing signs of aging. Monitor performance and consider service.",
	HealthPoor:      "Battery health is concerning. Professional assessment recommended.",
}

// Recommendation returns the fixed advice text for the status.
func (s HealthStatus) Recommendation() string { return recommendations[s] }

// HealthFor maps a state of health percentage to its status.
func HealthFor(sohPercent float64) HealthStatus {
	switch {
	case sohPercent >= 90:
		return HealthExcellent
	case sohPercent >= 80:
		return HealthGood
	case sohPercent >= 70:
		return HealthFair
	default:
		return HealthPoor
	}
}

// SoHInput describes battery age and usage habits.
type SoHInput struct {
	BatteryAgeMonths        float64 `json:"battery_age_months"`
	CycleCount              float64 `json:"cycle_count"`
	AverageTempC            float64 `json:"average_temp_c"`
	ChargingSpeedKw         float64 `json:"charging_speed_kw"`
	DepthOfDischargePercent float64 `json:"depth_of_discharge_percent"`
	DailyIdleHours          float64 `json:"daily_idle_hours"`
}

// SoHOutput is the current and projected state of health.
type SoHOutput struct {
	CurrentSoHPercent         float64      `json:"current_soh_percent"`
	FutureSoHPercent12mo      float64      `json:"future_soh_percent_12mo"`
	MonthlyDegradationPercent float64      `json:"monthly_degradation_percent"`
	HealthStatus              HealthStatus `json:"health_status"`
	Recommendation            string       `json:"recommendation"`
}

// SoHPredictor estimates battery state of health.
type SoHPredictor struct{}

// Estimate computes the current SoH, clamped to [50,100], and projects it 12
// months ahead using the average monthly degradation observed so far. A new
// battery (age 0) has no observed degradation, so its rate is 0 and the
// projection equals the current value.
func (SoHPredictor) Estimate(in SoHInput) (SoHOutput, error) {
	if err := in.validate(); err != nil {
		return SoHOutput{}, err
	}
	ageFactor := math.Max(0, 1-(in.BatteryAgeMonths/100)*0.5)
	cycleFactor := math.Max(0, 1-(in.CycleCount/2000)*0.4)
	tempFactor := 1 - math.Abs(in.AverageTempC-20)*0.005
	chargeFactor := 1 - math.Abs(in.ChargingSpeedKw-30)*0.002
	dodFactor := 1 - (in.DepthOfDischargePercent/100)*0.1
	idleFactor := 1 - (in.DailyIdleHours/100)*0.05

	current := 100 * ageFactor * cycleFactor * tempFactor * chargeFactor * idleFactor * dodFactor
	current = math.Max(50, math.Min(100, current))

	var rate float64
	if in.BatteryAgeMonths > 0 {
		rate = (100 - current) / in.BatteryAgeMonths
	}
	future := math.Max(0, current-rate*12)

	status := HealthFor(current)
	return SoHOutput{
		CurrentSoHPercent:         roundTo(current, 1),
		FutureSoHPercent12mo:      roundTo(future, 1),
		MonthlyDegradationPercent: roundTo(rate, 2),
		HealthStatus:              status,
		Recommendation:            status.Recommendation(),
	}, nil
}

func (in SoHInput) validate() error {
	var c check
	c.nonNegative("battery_age_months", in.BatteryAgeMonths)
	c.nonNegative("cycle_count", in.CycleCount)
	c.finite("average_temp_c", in.AverageTempC)
	c.nonNegative("charging_speed_kw", in.ChargingSpeedKw)
	c.between("depth_of_discharge_percent", in.DepthOfDischargePercent, 0, 100)
	c.between("daily_idle_hours", in.DailyIdleHours, 0, 24)
	return c.err
}
