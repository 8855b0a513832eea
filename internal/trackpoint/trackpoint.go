// Package trackpoint defines the per-sample input consumed by the statistics
// engine. Optional readings are nil when the sensor did not report them.
package trackpoint

import (
	"time"

	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/banshee-data/trackstats/internal/units"
)

// TrackPoint is a single recorded sample of a track.
type TrackPoint struct {
	Time time.Time

	Position *geo.Point

	// Altitude in meters; AltitudeGain and AltitudeLoss are the change
	// since the previous sample, both non-negative.
	Altitude     *float64
	AltitudeGain *float64
	AltitudeLoss *float64

	Speed     *units.Speed
	HeartRate *units.HeartRate
}

func (p *TrackPoint) HasPosition() bool     { return p.Position != nil }
func (p *TrackPoint) HasAltitude() bool     { return p.Altitude != nil }
func (p *TrackPoint) HasAltitudeGain() bool { return p.AltitudeGain != nil }
func (p *TrackPoint) HasAltitudeLoss() bool { return p.AltitudeLoss != nil }
func (p *TrackPoint) HasSpeed() bool        { return p.Speed != nil }
func (p *TrackPoint) HasHeartRate() bool    { return p.HeartRate != nil }

// SpeedOrZero returns the reported speed, or zero when there is none.
func (p *TrackPoint) SpeedOrZero() units.Speed {
	if p.Speed == nil {
		return 0
	}
	return *p.Speed
}

// AltitudeGainOrZero returns the reported gain, or zero when there is none.
func (p *TrackPoint) AltitudeGainOrZero() float64 {
	if p.AltitudeGain == nil {
		return 0
	}
	return *p.AltitudeGain
}

// AltitudeLossOrZero returns the reported loss, or zero when there is none.
func (p *TrackPoint) AltitudeLossOrZero() float64 {
	if p.AltitudeLoss == nil {
		return 0
	}
	return *p.AltitudeLoss
}

// Elapsed returns the time between two samples, negative if to precedes from.
func Elapsed(from, to *TrackPoint) time.Duration {
	return to.Time.Sub(from.Time)
}

// Float returns a pointer to v, for filling optional readings.
func Float(v float64) *float64 { return &v }

// SpeedPtr returns a pointer to s.
func SpeedPtr(s units.Speed) *units.Speed { return &s }

// HeartRatePtr returns a pointer to h.
func HeartRatePtr(h units.HeartRate) *units.HeartRate { return &h }
