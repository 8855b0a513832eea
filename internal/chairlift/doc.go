// Package chairlift detects assisted ascents within a recorded track.
//
// Two independent heuristics live here:
//   - LiftDetector: a speed / altitude-change state machine fed per sample.
//     Its output is the time spent riding lifts.
//   - WaitDetector: a proximity test against known lift boarding areas.
//     Its output is the time spent queueing.
//
// The outputs are separate counters; they are only added together when
// reporting total chairlift time.
package chairlift
