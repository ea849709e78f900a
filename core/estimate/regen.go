package estimate

import (
	"math"
)

// Terrain is the dominant road profile of a trip.
type Terrain string

const (
	TerrainFlat        Terrain = "flat"
	TerrainMixed       Terrain = "mixed"
	TerrainHilly       Terrain = "hilly"
	TerrainMountainous Terrain = "mountainous"
)

type terrainProfile struct {
	eventsPer100Km  float64
	elevationFactor float64
}

var terrainProfiles = map[Terrain]terrainProfile{
	TerrainFlat:        {eventsPer100Km: 3, elevationFactor: 0.1},
	TerrainMixed:       {eventsPer100Km: 8, elevationFactor: 0.5},
	TerrainHilly:       {eventsPer100Km: 15, elevationFactor: 1.0},
	TerrainMountainous: {eventsPer100Km: 25, elevationFactor: 1.5},
}

const (
	// AverageConsumptionKWhPerKm converts recovered energy into range.
	AverageConsumptionKWhPerKm = 0.2
	// RegenSavingsPerKWh values recovered energy.
	RegenSavingsPerKWh = 0.15

	gravity      = 9.81
	joulesPerKWh = 3.6e6
	kmhToMs      = 3.6
	regenEffMin  = 60
	regenEffMax  = 95
)

// RegenInput describes a trip and the vehicle's regenerative braking setup.
type RegenInput struct {
	VehicleWeightKg        float64 `json:"vehicle_weight_kg"`
	SpeedKmh               float64 `json:"speed_kmh"`
	BrakeIntensityPercent  float64 `json:"brake_intensity_percent"`
	TerrainType            Terrain `json:"terrain_type"`
	RegenEfficiencyPercent float64 `json:"regen_efficiency_percent"`
	TripDistanceKm         float64 `json:"trip_distance_km"`
	ElevationChangeM       float64 `json:"elevation_change_m"`
}

// RegenOutput is the energy recovered over the trip.
type RegenOutput struct {
	EnergyRecoveredKWh    float64 `json:"energy_recovered_kwh"`
	RangeExtensionKm      float64 `json:"range_extension_km"`
	EfficiencyGainPercent float64 `json:"efficiency_gain_percent"`
	BrakeEventsCount      int     `json:"brake_events_count"`
	PotentialSavings      float64 `json:"potential_savings_amount"`
}

// RegenEnergyEstimator estimates regenerative braking recovery.
type RegenEnergyEstimator struct{}

// Estimate sums the kinetic energy recovered at each braking event with the
// share of potential energy recovered on descents. The total floors at zero
// before range, efficiency and savings are derived from it.
func (RegenEnergyEstimator) Estimate(in RegenInput) (RegenOutput, error) {
	var c check
	c.positive("vehicle_weight_kg", in.VehicleWeightKg)
	c.nonNegative("speed_kmh", in.SpeedKmh)
	c.between("brake_intensity_percent", in.BrakeIntensityPercent, 0, 100)
	c.between("regen_efficiency_percent", in.RegenEfficiencyPercent, regenEffMin, regenEffMax)
	c.nonNegative("trip_distance_km", in.TripDistanceKm)
	c.finite("elevation_change_m", in.ElevationChangeM)
	terrain := lookup(&c, "terrain_type", terrainProfiles, in.TerrainType)
	if c.err != nil {
		return RegenOutput{}, c.err
	}

	efficiency := in.RegenEfficiencyPercent / 100
	kinetic := 0.5 * in.VehicleWeightKg * math.Pow(in.SpeedKmh/kmhToMs, 2) / 1000
	events := (in.TripDistanceKm / 100) * terrain.eventsPer100Km
	perBrake := kinetic * (in.BrakeIntensityPercent / 100) * efficiency
	elevation := in.ElevationChangeM * in.VehicleWeightKg * gravity / joulesPerKWh

	total := perBrake*events + elevation*terrain.elevationFactor*efficiency
	total = math.Max(0, total)

	var gain float64
	if in.TripDistanceKm > 0 {
		gain = total / (in.TripDistanceKm * AverageConsumptionKWhPerKm) * 100
	}
	return RegenOutput{
		EnergyRecoveredKWh:    roundTo(total, 3),
		RangeExtensionKm:      roundTo(total/AverageConsumptionKWhPerKm, 1),
		EfficiencyGainPercent: roundTo(gain, 1),
		BrakeEventsCount:      roundInt(events),
		PotentialSavings:      roundTo(total*RegenSavingsPerKWh, 2),
	}, nil
}
