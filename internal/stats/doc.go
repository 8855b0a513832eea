// Package stats aggregates statistics describing a recorded track.
//
// TrackStatistics is a plain value: copying it yields an independent
// aggregate. It is filled per sample (usually through an Updater) and
// partial aggregates covering disjoint time windows of one track can be
// combined with Merge.
//
// A TrackStatistics has no internal locking; a single writer owns it.
package stats
