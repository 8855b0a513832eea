// Package config loads the tuning parameters of the track statistics engine.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/banshee-data/trackstats/internal/fsutil"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// EnvPrefix prefixes every environment override, e.g.
// TRACKSTATS_LIFT_MAX_SPEED_MPS.
const EnvPrefix = "TRACKSTATS"

// validSpeedUnits mirrors units.ValidUnits.
var validSpeedUnits = map[string]bool{"mps": true, "mph": true, "kmph": true, "kph": true}

// LiftStation is the coordinate of a known lift boarding area.
type LiftStation struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// TuningConfig represents the root configuration for tuning parameters.
// Every field is optional; the Get* accessors fall back to the defaults.
type TuningConfig struct {
	// Lift state machine
	LiftMaxSpeedMPS   *float64 `json:"lift_max_speed_mps,omitempty" split_words:"true"`
	LiftAltitudeGainM *float64 `json:"lift_altitude_gain_m,omitempty" split_words:"true"`
	LiftAltitudeLossM *float64 `json:"lift_altitude_loss_m,omitempty" split_words:"true"`

	// Lift queue proximity detector
	ChairliftRadiusKm        *float64      `json:"chairlift_radius_km,omitempty" split_words:"true"`
	EndOfRunElevationM       *float64      `json:"end_of_run_elevation_m,omitempty" split_words:"true"`
	EndOfRunVerticalSpeedMPS *float64      `json:"end_of_run_vertical_speed_mps,omitempty" split_words:"true"`
	LiftStations             []LiftStation `json:"lift_stations,omitempty" ignored:"true"`

	// Updater
	MovingSpeedMPS *float64 `json:"moving_speed_mps,omitempty" split_words:"true"`

	// Reporting
	SpeedUnits *string `json:"speed_units,omitempty" split_words:"true"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	empty := EmptyTuningConfig()
	return &TuningConfig{
		LiftMaxSpeedMPS:          ptrFloat64(empty.GetLiftMaxSpeedMPS()),
		LiftAltitudeGainM:        ptrFloat64(empty.GetLiftAltitudeGainM()),
		LiftAltitudeLossM:        ptrFloat64(empty.GetLiftAltitudeLossM()),
		ChairliftRadiusKm:        ptrFloat64(empty.GetChairliftRadiusKm()),
		EndOfRunElevationM:       ptrFloat64(empty.GetEndOfRunElevationM()),
		EndOfRunVerticalSpeedMPS: ptrFloat64(empty.GetEndOfRunVerticalSpeedMPS()),
		MovingSpeedMPS:           ptrFloat64(empty.GetMovingSpeedMPS()),
		SpeedUnits:               ptrString(empty.GetSpeedUnits()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file on disk.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	return LoadTuningConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadTuningConfigFS is LoadTuningConfig reading from fsys.
func LoadTuningConfigFS(fsys fsutil.FileSystem, path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	fsys := fsutil.OSFileSystem{}
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/<pkg>/
		"../../../" + DefaultConfigPath, // from cmd/<tool>/ nested one deeper
	}
	for _, path := range candidates {
		if !fsutil.Exists(fsys, path) {
			continue
		}
		if cfg, err := LoadTuningConfigFS(fsys, path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// ApplyEnv overrides fields from TRACKSTATS_* environment variables.
// Unset variables leave the loaded values untouched; unprefixed names
// such as MOVING_SPEED_MPS are never read.
func (c *TuningConfig) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return c.Validate()
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"lift_max_speed_mps", c.LiftMaxSpeedMPS},
		{"lift_altitude_gain_m", c.LiftAltitudeGainM},
		{"lift_altitude_loss_m", c.LiftAltitudeLossM},
		{"chairlift_radius_km", c.ChairliftRadiusKm},
		{"end_of_run_elevation_m", c.EndOfRunElevationM},
		{"end_of_run_vertical_speed_mps", c.EndOfRunVerticalSpeedMPS},
		{"moving_speed_mps", c.MovingSpeedMPS},
	}
	for _, f := range nonNegative {
		if f.v != nil && *f.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", f.name, *f.v)
		}
	}

	for i, s := range c.LiftStations {
		if s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 180 {
			return fmt.Errorf("lift_stations[%d] has out-of-range coordinate (%f, %f)", i, s.Lat, s.Lon)
		}
	}

	if c.SpeedUnits != nil && !validSpeedUnits[*c.SpeedUnits] {
		return fmt.Errorf("invalid speed_units %q", *c.SpeedUnits)
	}

	return nil
}

// GetLiftMaxSpeedMPS returns the lift_max_speed_mps value or the default.
func (c *TuningConfig) GetLiftMaxSpeedMPS() float64 {
	if c.LiftMaxSpeedMPS == nil {
		return 2.0
	}
	return *c.LiftMaxSpeedMPS
}

// GetLiftAltitudeGainM returns the lift_altitude_gain_m value or the default.
func (c *TuningConfig) GetLiftAltitudeGainM() float64 {
	if c.LiftAltitudeGainM == nil {
		return 10.0
	}
	return *c.LiftAltitudeGainM
}

// GetLiftAltitudeLossM returns the lift_altitude_loss_m value or the default.
func (c *TuningConfig) GetLiftAltitudeLossM() float64 {
	if c.LiftAltitudeLossM == nil {
		return 10.0
	}
	return *c.LiftAltitudeLossM
}

// GetChairliftRadiusKm returns the chairlift_radius_km value or the default.
func (c *TuningConfig) GetChairliftRadiusKm() float64 {
	if c.ChairliftRadiusKm == nil {
		return 0.01
	}
	return *c.ChairliftRadiusKm
}

// GetEndOfRunElevationM returns the end_of_run_elevation_m value or the default.
func (c *TuningConfig) GetEndOfRunElevationM() float64 {
	if c.EndOfRunElevationM == nil {
		return 10
	}
	return *c.EndOfRunElevationM
}

// GetEndOfRunVerticalSpeedMPS returns the end_of_run_vertical_speed_mps value or the default.
func (c *TuningConfig) GetEndOfRunVerticalSpeedMPS() float64 {
	if c.EndOfRunVerticalSpeedMPS == nil {
		return 0.1
	}
	return *c.EndOfRunVerticalSpeedMPS
}

// GetMovingSpeedMPS returns the moving_speed_mps value or the default.
func (c *TuningConfig) GetMovingSpeedMPS() float64 {
	if c.MovingSpeedMPS == nil {
		return 0.5
	}
	return *c.MovingSpeedMPS
}

// GetSpeedUnits returns the speed_units value or the default.
func (c *TuningConfig) GetSpeedUnits() string {
	if c.SpeedUnits == nil {
		return "mps"
	}
	return *c.SpeedUnits
}
