package estimate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedYear(y int) func() time.Time {
	return func() time.Time { return time.Date(y, time.June, 1, 0, 0, 0, 0, time.UTC) }
}

func defaultPriceInput() PriceInput {
	return PriceInput{
		Make:                 MakeTesla,
		Model:                "model_3",
		Year:                 2021,
		MileageKm:            30000,
		BatteryHealthPercent: 92,
		Condition:            ConditionGood,
		Location:             MarketUrban,
		OriginalPriceAmount:  45000,
		BatteryCapacityKWh:   75,
	}
}

func TestPriceEstimator_Scenario(t *testing.T) {
	out, err := PriceEstimator{Now: fixedYear(2025)}.Estimate(defaultPriceInput())
	require.NoError(t, err)
	assert.Equal(t, 18161.0, out.EstimatedPrice)
	assert.Equal(t, 15437.0, out.PriceRangeMin)
	assert.Equal(t, 20886.0, out.PriceRangeMax)
	assert.Equal(t, 60.0, out.DepreciationPercent)
	assert.Equal(t, 9660.0, out.BatteryValueAmount)
	assert.Equal(t, TrendStable, out.MarketTrend)
	assert.Equal(t, 95.0, out.ConfidenceScorePercent)
}

func TestPriceEstimator_Trend(t *testing.T) {
	cases := []struct {
		make Make
		year int
		want Trend
	}{
		{MakeTesla, 2024, TrendIncreasing},
		{MakeTesla, 2022, TrendStable},
		{MakeBMW, 2024, TrendStable},
		{MakeNissan, 2019, TrendDecreasing},
		{MakeTesla, 2015, TrendDecreasing},
	}
	for _, c := range cases {
		in := defaultPriceInput()
		in.Make = c.make
		in.Year = c.year
		out, err := PriceEstimator{Now: fixedYear(2025)}.Estimate(in)
		require.NoError(t, err)
		assert.Equal(t, c.want, out.MarketTrend, "%s %d", c.make, c.year)
	}
}

func TestPriceEstimator_Confidence(t *testing.T) {
	in := defaultPriceInput()
	in.Make = MakeChevrolet
	in.BatteryHealthPercent = 60
	out, err := PriceEstimator{Now: fixedYear(2025)}.Estimate(in)
	require.NoError(t, err)
	// 70 + (60-70)*0.5 + (0.6-0.5)*50 = 70
	assert.Equal(t, 70.0, out.ConfidenceScorePercent)
}

func TestPriceEstimator_Invalid(t *testing.T) {
	edits := map[string]func(*PriceInput){
		"year":                   func(in *PriceInput) { in.Year = 2030 },
		"make":                   func(in *PriceInput) { in.Make = "delorean" },
		"condition":              func(in *PriceInput) { in.Condition = "mint" },
		"location":               func(in *PriceInput) { in.Location = "" },
		"battery_health_percent": func(in *PriceInput) { in.BatteryHealthPercent = 59 },
		"original_price_amount":  func(in *PriceInput) { in.OriginalPriceAmount = 0 },
		"mileage_km":             func(in *PriceInput) { in.MileageKm = -1 },
	}
	for field, edit := range edits {
		in := defaultPriceInput()
		edit(&in)
		_, err := PriceEstimator{Now: fixedYear(2025)}.Estimate(in)
		ie, ok := err.(*InvalidInputError)
		if !ok || ie.Field != field {
			t.Errorf("%s: unexpected error %v", field, err)
		}
	}
}

func TestPriceEstimator_RangeContainment(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	makes := []Make{MakeTesla, MakeBMW, MakeAudi, MakeNissan, MakeChevrolet, MakeOther}
	conditions := []Condition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}
	markets := []Market{MarketUrban, MarketSuburban, MarketRural}
	p := PriceEstimator{Now: fixedYear(2025)}
	for i := 0; i < 500; i++ {
		in := PriceInput{
			Make:                 makes[r.Intn(len(makes))],
			Year:                 2000 + r.Intn(26),
			MileageKm:            r.Float64() * 400000,
			BatteryHealthPercent: 60 + r.Float64()*40,
			Condition:            conditions[r.Intn(len(conditions))],
			Location:             markets[r.Intn(len(markets))],
			OriginalPriceAmount:  5000 + r.Float64()*150000,
			BatteryCapacityKWh:   20 + r.Float64()*100,
		}
		out, err := p.Estimate(in)
		require.NoError(t, err)
		if out.PriceRangeMin < 0 || out.PriceRangeMin > out.EstimatedPrice || out.EstimatedPrice > out.PriceRangeMax {
			t.Fatalf("range containment violated for %+v: %+v", in, out)
		}
		if out.ConfidenceScorePercent > 95 {
			t.Fatalf("confidence above 95: %v", out.ConfidenceScorePercent)
		}
	}
}
