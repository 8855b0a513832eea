package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/trackstats/internal/fsutil"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.LiftMaxSpeedMPS == nil || *cfg.LiftMaxSpeedMPS != 2.0 {
		t.Errorf("Expected LiftMaxSpeedMPS 2.0, got %v", cfg.LiftMaxSpeedMPS)
	}
	if cfg.ChairliftRadiusKm == nil || *cfg.ChairliftRadiusKm != 0.01 {
		t.Errorf("Expected ChairliftRadiusKm 0.01, got %v", cfg.ChairliftRadiusKm)
	}
	if cfg.SpeedUnits == nil || *cfg.SpeedUnits != "mps" {
		t.Errorf("Expected SpeedUnits mps, got %v", cfg.SpeedUnits)
	}

	if cfg.GetLiftAltitudeGainM() != 10.0 {
		t.Errorf("GetLiftAltitudeGainM() = %f, want 10", cfg.GetLiftAltitudeGainM())
	}
	if cfg.GetLiftAltitudeLossM() != 10.0 {
		t.Errorf("GetLiftAltitudeLossM() = %f, want 10", cfg.GetLiftAltitudeLossM())
	}
	if cfg.GetEndOfRunElevationM() != 10 {
		t.Errorf("GetEndOfRunElevationM() = %f, want 10", cfg.GetEndOfRunElevationM())
	}
	if cfg.GetEndOfRunVerticalSpeedMPS() != 0.1 {
		t.Errorf("GetEndOfRunVerticalSpeedMPS() = %f, want 0.1", cfg.GetEndOfRunVerticalSpeedMPS())
	}
	if cfg.GetMovingSpeedMPS() != 0.5 {
		t.Errorf("GetMovingSpeedMPS() = %f, want 0.5", cfg.GetMovingSpeedMPS())
	}
}

func TestMustLoadDefaultConfigMatchesBuiltins(t *testing.T) {
	fileCfg := MustLoadDefaultConfig()
	builtin := EmptyTuningConfig()

	if fileCfg.GetLiftMaxSpeedMPS() != builtin.GetLiftMaxSpeedMPS() {
		t.Errorf("lift_max_speed_mps: file %f, builtin %f", fileCfg.GetLiftMaxSpeedMPS(), builtin.GetLiftMaxSpeedMPS())
	}
	if fileCfg.GetChairliftRadiusKm() != builtin.GetChairliftRadiusKm() {
		t.Errorf("chairlift_radius_km: file %f, builtin %f", fileCfg.GetChairliftRadiusKm(), builtin.GetChairliftRadiusKm())
	}
	if fileCfg.GetMovingSpeedMPS() != builtin.GetMovingSpeedMPS() {
		t.Errorf("moving_speed_mps: file %f, builtin %f", fileCfg.GetMovingSpeedMPS(), builtin.GetMovingSpeedMPS())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "resort.json")

	testJSON := `{
  "lift_max_speed_mps": 3.5,
  "chairlift_radius_km": 0.02,
  "lift_stations": [{"name": "Gondola base", "lat": 46.02, "lon": 7.75}],
  "speed_units": "kmph"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := cfg.GetLiftMaxSpeedMPS(); got != 3.5 {
		t.Errorf("GetLiftMaxSpeedMPS() = %f, want 3.5", got)
	}
	if got := cfg.GetChairliftRadiusKm(); got != 0.02 {
		t.Errorf("GetChairliftRadiusKm() = %f, want 0.02", got)
	}
	// omitted field keeps default
	if got := cfg.GetLiftAltitudeGainM(); got != 10.0 {
		t.Errorf("GetLiftAltitudeGainM() = %f, want 10", got)
	}
	if len(cfg.LiftStations) != 1 || cfg.LiftStations[0].Name != "Gondola base" {
		t.Errorf("LiftStations = %+v", cfg.LiftStations)
	}
	if got := cfg.GetSpeedUnits(); got != "kmph" {
		t.Errorf("GetSpeedUnits() = %q, want kmph", got)
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	if _, err := LoadTuningConfig("/nonexistent/path/to/config.json"); err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigWrongExtension(t *testing.T) {
	_, err := LoadTuningConfig("/tmp/config.yaml")
	if err == nil || !strings.Contains(err.Error(), ".json") {
		t.Errorf("Expected extension error, got %v", err)
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	if err := os.WriteFile(configPath, []byte(`{"lift_max_speed_mps": "fast"`), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadTuningConfig(configPath); err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestLoadTuningConfigFS(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile("tuning.json", []byte(`{
		"lift_max_speed_mps": 2.5,
		"lift_stations": [{"name": "Sunnegga", "lat": 46.0185, "lon": 7.7657}]
	}`))

	cfg, err := LoadTuningConfigFS(mfs, "tuning.json")
	if err != nil {
		t.Fatalf("LoadTuningConfigFS failed: %v", err)
	}
	if got := cfg.GetLiftMaxSpeedMPS(); got != 2.5 {
		t.Errorf("GetLiftMaxSpeedMPS() = %v, want 2.5", got)
	}
	if got := cfg.GetLiftAltitudeGainM(); got != 10 {
		t.Errorf("GetLiftAltitudeGainM() = %v, want default 10", got)
	}
	if len(cfg.LiftStations) != 1 || cfg.LiftStations[0].Name != "Sunnegga" {
		t.Errorf("LiftStations = %+v, want one Sunnegga station", cfg.LiftStations)
	}

	mfs.AddFile("huge.json", make([]byte, 2*1024*1024))
	if _, err := LoadTuningConfigFS(mfs, "huge.json"); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected size error, got %v", err)
	}

	mfs.AddFile("negative.json", []byte(`{"chairlift_radius_km": -1}`))
	if _, err := LoadTuningConfigFS(mfs, "negative.json"); err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     DefaultTuningConfig(),
			wantErr: false,
		},
		{
			name:    "empty config is valid",
			cfg:     &TuningConfig{},
			wantErr: false,
		},
		{
			name:    "negative lift speed",
			cfg:     &TuningConfig{LiftMaxSpeedMPS: ptrFloat64(-1)},
			wantErr: true,
		},
		{
			name:    "negative radius",
			cfg:     &TuningConfig{ChairliftRadiusKm: ptrFloat64(-0.01)},
			wantErr: true,
		},
		{
			name:    "station latitude out of range",
			cfg:     &TuningConfig{LiftStations: []LiftStation{{Lat: 91, Lon: 7}}},
			wantErr: true,
		},
		{
			name:    "unknown speed units",
			cfg:     &TuningConfig{SpeedUnits: ptrString("knots")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRACKSTATS_LIFT_MAX_SPEED_MPS", "2.5")
	t.Setenv("TRACKSTATS_SPEED_UNITS", "mph")

	cfg := EmptyTuningConfig()
	cfg.ChairliftRadiusKm = ptrFloat64(0.05)
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if got := cfg.GetLiftMaxSpeedMPS(); got != 2.5 {
		t.Errorf("GetLiftMaxSpeedMPS() = %f, want 2.5", got)
	}
	if got := cfg.GetSpeedUnits(); got != "mph" {
		t.Errorf("GetSpeedUnits() = %q, want mph", got)
	}
	// not in the environment: file value survives
	if got := cfg.GetChairliftRadiusKm(); got != 0.05 {
		t.Errorf("GetChairliftRadiusKm() = %f, want 0.05", got)
	}
	if cfg.LiftAltitudeGainM != nil {
		t.Errorf("LiftAltitudeGainM should stay unset, got %v", *cfg.LiftAltitudeGainM)
	}
}

func TestApplyEnvIgnoresUnprefixedNames(t *testing.T) {
	t.Setenv("MOVING_SPEED_MPS", "9")
	t.Setenv("LIFT_MAX_SPEED_MPS", "9")
	t.Setenv("SPEED_UNITS", "kph")

	cfg := EmptyTuningConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.MovingSpeedMPS != nil || cfg.LiftMaxSpeedMPS != nil || cfg.SpeedUnits != nil {
		t.Errorf("unprefixed variables leaked into the config: %+v", cfg)
	}
}

func TestApplyEnvRejectsInvalid(t *testing.T) {
	t.Setenv("TRACKSTATS_MOVING_SPEED_MPS", "-3")

	cfg := EmptyTuningConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("Expected validation error for negative moving speed")
	}
}
