package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ecoamp/app"
	"github.com/kilianp07/ecoamp/core/estimate"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Run one estimator and print the result as JSON",
}

var (
	rangeIn estimate.RangeInput
	sohIn   estimate.SoHInput
	costIn  estimate.CostInput
	regenIn estimate.RegenInput
	priceIn estimate.PriceInput
)

func init() {
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Predict driving range (counts as a prediction)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *app.Service) error {
				out, err := svc.Dashboard.Range(cmd.Context(), rangeIn)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"estimated_km":   out.EstimatedKm,
					"miles":          out.Miles(),
					"hours_at_80kmh": out.HoursAt80Kmh(),
				})
			})
		},
	}
	f := rangeCmd.Flags()
	f.Float64Var(&rangeIn.BatteryLevelPercent, "battery-level", 80, "battery level in percent")
	f.Float64Var(&rangeIn.BatteryCapacityKWh, "capacity", 75, "battery capacity in kWh")
	f.Float64Var(&rangeIn.TemperatureC, "temperature", 20, "outside temperature in °C")
	f.Float64Var(&rangeIn.WindSpeedKmh, "wind", 10, "wind speed in km/h")
	f.Float64Var(&rangeIn.DrivingAggressiveness, "aggressiveness", 50, "driving aggressiveness 0-100")
	f.Float64Var(&rangeIn.VehicleWeightKg, "weight", 1800, "vehicle weight in kg")

	sohCmd := &cobra.Command{
		Use:   "soh",
		Short: "Predict battery state of health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *app.Service) error {
				out, err := svc.Dashboard.SoH(cmd.Context(), sohIn)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	f = sohCmd.Flags()
	f.Float64Var(&sohIn.BatteryAgeMonths, "age-months", 24, "battery age in months")
	f.Float64Var(&sohIn.CycleCount, "cycles", 500, "full charge cycles")
	f.Float64Var(&sohIn.AverageTempC, "avg-temp", 25, "average operating temperature in °C")
	f.Float64Var(&sohIn.ChargingSpeedKw, "charging-kw", 50, "typical charging power in kW")
	f.Float64Var(&sohIn.DepthOfDischargePercent, "depth-of-discharge", 80, "typical depth of discharge in percent")
	f.Float64Var(&sohIn.DailyIdleHours, "idle-hours", 10, "daily idle hours")

	costCmd := &cobra.Command{
		Use:   "cost",
		Short: "Forecast charging cost",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *app.Service) error {
				out, err := svc.Dashboard.Cost(cmd.Context(), costIn)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	f = costCmd.Flags()
	f.Float64Var(&costIn.BatteryCapacityKWh, "capacity", 75, "battery capacity in kWh")
	f.Float64Var(&costIn.CurrentChargePercent, "current", 20, "current charge in percent")
	f.Float64Var(&costIn.TargetChargePercent, "target", 80, "target charge in percent")
	f.StringVar((*string)(&costIn.Location), "location", string(estimate.LocationHome), "home, workplace, public or highway")
	f.StringVar((*string)(&costIn.TimeOfDay), "time-of-day", string(estimate.Evening), "night, morning, afternoon or evening")
	f.StringVar((*string)(&costIn.ChargingSpeed), "speed", string(estimate.SpeedStandard), "slow, standard, fast or superfast")
	f.Float64Var(&costIn.ElectricityRatePerKWh, "rate", 0.15, "electricity rate per kWh")

	regenCmd := &cobra.Command{
		Use:   "regen",
		Short: "Estimate regenerative braking recovery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *app.Service) error {
				out, err := svc.Dashboard.Regen(cmd.Context(), regenIn)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	f = regenCmd.Flags()
	f.Float64Var(&regenIn.VehicleWeightKg, "weight", 1800, "vehicle weight in kg")
	f.Float64Var(&regenIn.SpeedKmh, "speed", 50, "average speed in km/h")
	f.Float64Var(&regenIn.BrakeIntensityPercent, "brake-intensity", 70, "braking intensity 0-100")
	f.StringVar((*string)(&regenIn.TerrainType), "terrain", string(estimate.TerrainMixed), "flat, mixed, hilly or mountainous")
	f.Float64Var(&regenIn.RegenEfficiencyPercent, "efficiency", 85, "regen efficiency 60-95")
	f.Float64Var(&regenIn.TripDistanceKm, "distance", 100, "trip distance in km")
	f.Float64Var(&regenIn.ElevationChangeM, "elevation", 200, "net elevation change in m")

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Estimate used EV market value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(func(svc *app.Service) error {
				out, err := svc.Dashboard.Price(cmd.Context(), priceIn)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
	f = priceCmd.Flags()
	f.StringVar((*string)(&priceIn.Make), "make", string(estimate.MakeTesla), "tesla, bmw, audi, nissan, chevrolet or other")
	f.StringVar(&priceIn.Model, "model", "model_3", "vehicle model")
	f.IntVar(&priceIn.Year, "year", 2021, "model year")
	f.Float64Var(&priceIn.MileageKm, "mileage", 30000, "mileage in km")
	f.Float64Var(&priceIn.BatteryHealthPercent, "battery-health", 92, "battery health 60-100")
	f.StringVar((*string)(&priceIn.Condition), "condition", string(estimate.ConditionGood), "excellent, good, fair or poor")
	f.StringVar((*string)(&priceIn.Location), "market", string(estimate.MarketUrban), "urban, suburban or rural")
	f.Float64Var(&priceIn.OriginalPriceAmount, "original-price", 45000, "original purchase price")
	f.Float64Var(&priceIn.BatteryCapacityKWh, "capacity", 75, "battery capacity in kWh")

	estimateCmd.AddCommand(rangeCmd, sohCmd, costCmd, regenCmd, priceCmd)
	rootCmd.AddCommand(estimateCmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
