package estimate

import (
	"math"
	"time"
)

// Make is the vehicle brand bucket used for value retention.
type Make string

const (
	MakeTesla     Make = "tesla"
	MakeBMW       Make = "bmw"
	MakeAudi      Make = "audi"
	MakeNissan    Make = "nissan"
	MakeChevrolet Make = "chevrolet"
	MakeOther     Make = "other"
)

// Condition is the overall state of the vehicle.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// Market is the kind of area the vehicle is sold in.
type Market string

const (
	MarketUrban    Market = "urban"
	MarketSuburban Market = "suburban"
	MarketRural    Market = "rural"
)

// Trend is the expected direction of the resale market.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

var (
	brandFactors = map[Make]float64{
		MakeTesla:     0.85,
		MakeBMW:       0.75,
		MakeAudi:      0.70,
		MakeNissan:    0.65,
		MakeChevrolet: 0.60,
		MakeOther:     0.55,
	}
	conditionFactors = map[Condition]float64{
		ConditionExcellent: 1.1,
		ConditionGood:      1.0,
		ConditionFair:      0.85,
		ConditionPoor:      0.65,
	}
	marketFactors = map[Market]float64{
		MarketUrban:    1.05,
		MarketSuburban: 1.0,
		MarketRural:    0.9,
	}
)

const (
	// BatteryReplacementPerKWh is the pack replacement cost used for battery value.
	BatteryReplacementPerKWh = 200
	maxConfidence            = 95
)

// PriceInput describes a used vehicle listing.
type PriceInput struct {
	Make                 Make      `json:"make"`
	Model                string    `json:"model"`
	Year                 int       `json:"year"`
	MileageKm            float64   `json:"mileage_km"`
	BatteryHealthPercent float64   `json:"battery_health_percent"`
	Condition            Condition `json:"condition"`
	Location             Market    `json:"location"`
	OriginalPriceAmount  float64   `json:"original_price_amount"`
	BatteryCapacityKWh   float64   `json:"battery_capacity_kwh"`
}

// PriceOutput is the resale estimate.
type PriceOutput struct {
	EstimatedPrice         float64 `json:"estimated_price"`
	PriceRangeMin          float64 `json:"price_range_min"`
	PriceRangeMax          float64 `json:"price_range_max"`
	DepreciationPercent    float64 `json:"depreciation_percent"`
	BatteryValueAmount     float64 `json:"battery_value_amount"`
	MarketTrend            Trend   `json:"market_trend"`
	ConfidenceScorePercent float64 `json:"confidence_score_percent"`
}

// PriceEstimator estimates used EV resale value. Now supplies the current
// year; it defaults to time.Now.
type PriceEstimator struct {
	Now func() time.Time
}

// Estimate derives the retention rate from age, mileage, brand, condition,
// market and battery health and applies it to the original price.
func (p PriceEstimator) Estimate(in PriceInput) (PriceOutput, error) {
	currentYear := p.now().Year()

	var c check
	if in.Year > currentYear && c.err == nil {
		c.err = invalid("year", in.Year, "must not be in the future")
	}
	c.nonNegative("mileage_km", in.MileageKm)
	c.between("battery_health_percent", in.BatteryHealthPercent, 60, 100)
	c.positive("original_price_amount", in.OriginalPriceAmount)
	c.positive("battery_capacity_kwh", in.BatteryCapacityKWh)
	brand := lookup(&c, "make", brandFactors, in.Make)
	condition := lookup(&c, "condition", conditionFactors, in.Condition)
	market := lookup(&c, "location", marketFactors, in.Location)
	if c.err != nil {
		return PriceOutput{}, c.err
	}

	age := currentYear - in.Year
	depreciation := math.Min(0.6, float64(age)*0.12+(in.MileageKm/100000)*0.15)
	batteryFactor := 0.4 + (in.BatteryHealthPercent/100)*0.6
	retention := (1 - depreciation) * brand * condition * market * batteryFactor

	price := in.OriginalPriceAmount * retention
	variance := price * 0.15
	batteryValue := in.BatteryCapacityKWh * BatteryReplacementPerKWh * (in.BatteryHealthPercent / 100) * 0.7
	confidence := math.Min(maxConfidence, 70+(in.BatteryHealthPercent-70)*0.5+(brand-0.5)*50)

	return PriceOutput{
		EstimatedPrice:         roundTo(price, 0),
		PriceRangeMin:          roundTo(math.Max(0, price-variance), 0),
		PriceRangeMax:          roundTo(price+variance, 0),
		DepreciationPercent:    roundTo((1-retention)*100, 0),
		BatteryValueAmount:     roundTo(batteryValue, 0),
		MarketTrend:            trendFor(in.Make, age),
		ConfidenceScorePercent: roundTo(confidence, 0),
	}, nil
}

func trendFor(m Make, ageYears int) Trend {
	switch {
	case m == MakeTesla && ageYears < 3:
		return TrendIncreasing
	case ageYears > 5:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func (p PriceEstimator) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
