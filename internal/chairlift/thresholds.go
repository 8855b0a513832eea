package chairlift

import (
	"github.com/banshee-data/trackstats/internal/config"
	"github.com/banshee-data/trackstats/internal/units"
)

// Thresholds holds the tunable limits of both detectors.
type Thresholds struct {
	// Lift state machine
	MaxLiftSpeed     units.Speed // Max speed while riding (default: 2.0 m/s)
	LiftAltitudeGain float64     // Min per-sample gain to enter a lift (default: 10 m)
	LiftAltitudeLoss float64     // Per-sample loss that ends a ride (default: 10 m)

	// Queue proximity detector
	RadiusKm              float64 // Boarding-area radius (default: 0.01 km)
	EndOfRunElevation     float64 // Min elevation rise that ends a run (default: 10 m)
	EndOfRunVerticalSpeed float64 // Min vertical speed confirming it (default: 0.1 m/s)
}

// DefaultThresholds returns the built-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxLiftSpeed:          2.0,
		LiftAltitudeGain:      10.0,
		LiftAltitudeLoss:      10.0,
		RadiusKm:              0.01,
		EndOfRunElevation:     10,
		EndOfRunVerticalSpeed: 0.1,
	}
}

// ThresholdsFromTuning builds Thresholds from a loaded TuningConfig.
func ThresholdsFromTuning(cfg *config.TuningConfig) Thresholds {
	return Thresholds{
		MaxLiftSpeed:          units.Speed(cfg.GetLiftMaxSpeedMPS()),
		LiftAltitudeGain:      cfg.GetLiftAltitudeGainM(),
		LiftAltitudeLoss:      cfg.GetLiftAltitudeLossM(),
		RadiusKm:              cfg.GetChairliftRadiusKm(),
		EndOfRunElevation:     cfg.GetEndOfRunElevationM(),
		EndOfRunVerticalSpeed: cfg.GetEndOfRunVerticalSpeedMPS(),
	}
}

// effective returns th for detectors built with explicit thresholds, even
// all-zero ones, and DefaultThresholds for zero-value detectors.
func effective(th Thresholds, configured bool) Thresholds {
	if !configured {
		return DefaultThresholds()
	}
	return th
}
