package stats

import (
	"fmt"
	"time"

	"github.com/banshee-data/trackstats/internal/chairlift"
	"github.com/banshee-data/trackstats/internal/config"
	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/banshee-data/trackstats/internal/timeutil"
	"github.com/banshee-data/trackstats/internal/trackpoint"
	"github.com/banshee-data/trackstats/internal/units"
)

// UpdaterConfig controls how samples are folded into an aggregate.
type UpdaterConfig struct {
	Thresholds chairlift.Thresholds

	// MovingSpeed is the lowest speed counted as moving (default: 0.5 m/s).
	MovingSpeed units.Speed

	// LiftStations are known boarding areas. The queue detector only runs
	// when at least one is configured.
	LiftStations []geo.Point
}

// DefaultUpdaterConfig returns the built-in configuration with no lift
// stations.
func DefaultUpdaterConfig() UpdaterConfig {
	return UpdaterConfig{
		Thresholds:  chairlift.DefaultThresholds(),
		MovingSpeed: 0.5,
	}
}

// UpdaterConfigFromTuning builds an UpdaterConfig from a loaded TuningConfig.
func UpdaterConfigFromTuning(cfg *config.TuningConfig) UpdaterConfig {
	stations := make([]geo.Point, 0, len(cfg.LiftStations))
	for _, s := range cfg.LiftStations {
		stations = append(stations, geo.Point{Lat: s.Lat, Lon: s.Lon})
	}
	return UpdaterConfig{
		Thresholds:   chairlift.ThresholdsFromTuning(cfg),
		MovingSpeed:  units.Speed(cfg.GetMovingSpeedMPS()),
		LiftStations: stations,
	}
}

// Updater folds a time-ordered stream of samples into a TrackStatistics.
// It is not safe for concurrent use; run one Updater per segment.
type Updater struct {
	cfg   UpdaterConfig
	clock timeutil.Clock

	stats TrackStatistics
	last  *trackpoint.TrackPoint

	// time the running heart rate average is weighted by
	heartRateWeight time.Duration
}

// NewUpdater returns an Updater with an empty aggregate. A nil clock uses
// the wall clock.
func NewUpdater(cfg UpdaterConfig, clock timeutil.Clock) *Updater {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Updater{
		cfg:   cfg,
		clock: clock,
		stats: NewWithThresholds(cfg.Thresholds),
	}
}

// Stats returns a copy of the current aggregate.
func (u *Updater) Stats() TrackStatistics {
	return u.stats
}

// Add folds p into the aggregate. A sample older than the previous one is
// rejected with ErrInvariantViolation and leaves the aggregate untouched.
func (u *Updater) Add(p trackpoint.TrackPoint) error {
	if u.last == nil {
		u.first(&p)
		return nil
	}

	dt := trackpoint.Elapsed(u.last, &p)
	if dt < 0 {
		opsf("rejected out-of-order sample at %s (previous %s)",
			p.Time.Format(time.RFC3339Nano), u.last.Time.Format(time.RFC3339Nano))
		return fmt.Errorf("sample at %s precedes previous sample at %s: %w",
			p.Time.Format(time.RFC3339Nano), u.last.Time.Format(time.RFC3339Nano), ErrInvariantViolation)
	}

	if err := u.stats.SetStopTime(p.Time); err != nil {
		return err
	}
	u.stats.totalTime = p.Time.Sub(u.stats.startTime)

	var dist units.Distance
	if u.last.HasPosition() && p.HasPosition() {
		dist = geo.Distance(*u.last.Position, *p.Position)
		u.stats.AddTotalDistance(dist)
	}

	speed := units.SpeedOf(dist, dt)
	if p.HasSpeed() && !p.Speed.IsInvalid() {
		speed = *p.Speed
		u.stats.maxSpeed = units.MaxSpeed(u.stats.maxSpeed, speed)
	}

	moving := dt > 0 && speed.GreaterOrEqualThan(u.cfg.MovingSpeed)
	if moving {
		// dt was checked above, so this cannot fail.
		_ = u.stats.AddMovingTime(dt)
	}
	u.stats.idle = !moving

	u.observe(&p, dt)
	u.last = &p

	tracef("sample %s dt=%s dist=%v speed=%v moving=%t", p.Time.Format(time.RFC3339Nano), dt, dist, speed, moving)
	return nil
}

// RefreshTotalTime sets the total time to the wall-clock time elapsed since
// the start. It is meant for tracks still being recorded.
func (u *Updater) RefreshTotalTime() {
	if !u.stats.IsInitialized() {
		return
	}
	u.stats.totalTime = u.clock.Since(u.stats.startTime)
}

func (u *Updater) first(p *trackpoint.TrackPoint) {
	u.stats.ResetAt(p.Time)
	u.heartRateWeight = 0
	u.stats.idle = true

	if p.HasPosition() && p.HasAltitude() && len(u.cfg.LiftStations) > 0 {
		u.stats.StartChairliftActivity(p.Time, *p.Altitude)
	}
	if p.HasSpeed() && !p.Speed.IsInvalid() {
		u.stats.maxSpeed = *p.Speed
	}

	u.observe(p, 0)
	u.last = p
}

// observe feeds the readings every sample carries regardless of its
// position in the stream.
func (u *Updater) observe(p *trackpoint.TrackPoint, dt time.Duration) {
	u.stats.UpdateAltitudeExtremities(p.Altitude)
	if p.HasAltitudeGain() {
		u.stats.AddTotalAltitudeGain(*p.AltitudeGain)
	}
	if p.HasAltitudeLoss() {
		u.stats.AddTotalAltitudeLoss(*p.AltitudeLoss)
	}

	if p.HasHeartRate() {
		u.stats.averageHeartRate = mergeHeartRate(
			u.stats.averageHeartRate, u.heartRateWeight.Seconds(),
			optionalFloat{v: p.HeartRate.BPM(), ok: true}, dt.Seconds())
		u.heartRateWeight += dt
	}

	u.stats.UpdateChairliftTime(p)
	u.updateQueue(p)
}

func (u *Updater) updateQueue(p *trackpoint.TrackPoint) {
	if len(u.cfg.LiftStations) == 0 || !p.HasPosition() || !p.HasAltitude() {
		return
	}

	pos := *p.Position
	u.stats.SetUserPosition(pos)
	station, _ := chairlift.NearestStation(u.cfg.LiftStations, pos)

	if !u.stats.ChairliftActivityActive() && geo.Within(pos, station, u.stats.wait.Thresholds().RadiusKm) {
		u.stats.StartChairliftActivity(p.Time, *p.Altitude)
		diagf("restarted lift activity at %s near %.5f,%.5f", p.Time.Format(time.RFC3339), station.Lat, station.Lon)
	}
	u.stats.UpdateChairliftLocation(station.Lat, station.Lon, *p.Altitude, p.Time)
}
