// Package testutil provides shared test utilities and fixtures.
//
// Samples are built relative to Epoch so tests can talk in seconds.
package testutil

import (
	"testing"
	"time"

	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/banshee-data/trackstats/internal/trackpoint"
	"github.com/banshee-data/trackstats/internal/units"
)

// Epoch is the time offset zero of every fixture sample.
var Epoch = time.Date(2024, time.February, 3, 9, 0, 0, 0, time.UTC)

// At returns Epoch plus the given number of seconds.
func At(seconds float64) time.Time {
	return Epoch.Add(time.Duration(seconds * float64(time.Second)))
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// PointBuilder builds a TrackPoint fixture. Readings not set stay nil.
type PointBuilder struct {
	p trackpoint.TrackPoint
}

// Point starts a sample taken the given number of seconds after Epoch.
func Point(seconds float64) *PointBuilder {
	return &PointBuilder{p: trackpoint.TrackPoint{Time: At(seconds)}}
}

func (b *PointBuilder) Pos(lat, lon float64) *PointBuilder {
	b.p.Position = &geo.Point{Lat: lat, Lon: lon}
	return b
}

func (b *PointBuilder) Alt(m float64) *PointBuilder {
	b.p.Altitude = trackpoint.Float(m)
	return b
}

func (b *PointBuilder) Gain(m float64) *PointBuilder {
	b.p.AltitudeGain = trackpoint.Float(m)
	return b
}

func (b *PointBuilder) Loss(m float64) *PointBuilder {
	b.p.AltitudeLoss = trackpoint.Float(m)
	return b
}

func (b *PointBuilder) Speed(mps float64) *PointBuilder {
	b.p.Speed = trackpoint.SpeedPtr(units.Speed(mps))
	return b
}

func (b *PointBuilder) HeartRate(bpm float64) *PointBuilder {
	b.p.HeartRate = trackpoint.HeartRatePtr(units.HeartRate(bpm))
	return b
}

// Build returns the sample.
func (b *PointBuilder) Build() trackpoint.TrackPoint {
	return b.p
}

// Track builds a segment from builders in order.
func Track(points ...*PointBuilder) []trackpoint.TrackPoint {
	out := make([]trackpoint.TrackPoint, 0, len(points))
	for _, b := range points {
		out = append(out, b.Build())
	}
	return out
}
