// Package gpxsource turns GPX documents into TrackPoint segments.
//
// GPX carries positions, elevations and timestamps only. Per-sample
// altitude gain and loss are derived from consecutive elevations within a
// segment, and speed from the Haversine distance over elapsed time.
package gpxsource

import (
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/banshee-data/trackstats/internal/trackpoint"
	"github.com/banshee-data/trackstats/internal/units"
)

// ReadSegments parses a GPX document and returns one slice of samples per
// track segment, across all tracks, in document order.
func ReadSegments(r io.Reader) ([][]trackpoint.TrackPoint, error) {
	doc, err := gpx.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}
	return segmentsOf(doc), nil
}

// ReadFile is ReadSegments for a file on disk.
func ReadFile(path string) ([][]trackpoint.TrackPoint, error) {
	doc, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("read GPX file: %w", err)
	}
	return segmentsOf(doc), nil
}

func segmentsOf(doc *gpx.GPX) [][]trackpoint.TrackPoint {
	var segments [][]trackpoint.TrackPoint
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			segments = append(segments, convertSegment(segment.Points))
		}
	}
	return segments
}

func convertSegment(points []gpx.GPXPoint) []trackpoint.TrackPoint {
	out := make([]trackpoint.TrackPoint, 0, len(points))
	var prevElevation *float64
	for i := range points {
		pt := &points[i]
		p := trackpoint.TrackPoint{
			Time:     pt.Timestamp,
			Position: &geo.Point{Lat: pt.Latitude, Lon: pt.Longitude},
		}

		if pt.Elevation.NotNull() {
			ele := pt.Elevation.Value()
			p.Altitude = &ele
			if prevElevation != nil {
				delta := ele - *prevElevation
				p.AltitudeGain = trackpoint.Float(max(delta, 0))
				p.AltitudeLoss = trackpoint.Float(max(-delta, 0))
			}
			prevElevation = &ele
		}

		if i > 0 {
			prev := &out[i-1]
			if dt := trackpoint.Elapsed(prev, &p); dt > 0 && !prev.Time.IsZero() && !p.Time.IsZero() {
				speed := units.SpeedOf(geo.Distance(*prev.Position, *p.Position), dt)
				p.Speed = &speed
			}
		}

		out = append(out, p)
	}
	return out
}

// AverageSpeed returns the total distance between consecutive track points
// over the total time between them, for every point in the document
// regardless of segment boundaries. Pairs missing a timestamp are skipped.
// The result is zero when no time elapses.
func AverageSpeed(r io.Reader) (units.Speed, error) {
	doc, err := gpx.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("parse GPX: %w", err)
	}

	var (
		prev      *gpx.GPXPoint
		distance  units.Distance
		totalTime float64
	)
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for i := range segment.Points {
				cur := &segment.Points[i]
				if prev != nil && !prev.Timestamp.IsZero() && !cur.Timestamp.IsZero() {
					distance = distance.Plus(geo.Distance(
						geo.Point{Lat: prev.Latitude, Lon: prev.Longitude},
						geo.Point{Lat: cur.Latitude, Lon: cur.Longitude}))
					totalTime += cur.Timestamp.Sub(prev.Timestamp).Seconds()
				}
				prev = cur
			}
		}
	}

	if totalTime == 0 {
		return 0, nil
	}
	return units.Speed(distance.ToM() / totalTime), nil
}
