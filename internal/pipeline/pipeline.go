// Package pipeline aggregates the segments of a track concurrently.
//
// Each segment is folded into its own aggregate on a separate goroutine.
// The aggregates are owned by their goroutine until it returns; only then
// does the coordinator merge them, in segment order, into the track total.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trackstats/internal/stats"
	"github.com/banshee-data/trackstats/internal/trackpoint"
)

// cancelCheckInterval is how many samples a worker folds between context
// checks.
const cancelCheckInterval = 512

// Result is the outcome of one aggregation run.
type Result struct {
	RunID string

	// Total is the merge of every segment.
	Total stats.TrackStatistics

	// Segments holds the per-segment aggregates in input order.
	Segments []stats.TrackStatistics

	Samples int
}

// AggregateSegments folds every segment concurrently and merges the results.
// The first failing segment cancels the others and its error is returned.
func AggregateSegments(ctx context.Context, segments [][]trackpoint.TrackPoint, cfg stats.UpdaterConfig) (Result, error) {
	res := Result{
		RunID:    uuid.NewString(),
		Segments: make([]stats.TrackStatistics, len(segments)),
	}
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		g.Go(func() error {
			s, err := aggregateSegment(gctx, seg, cfg)
			if err != nil {
				return fmt.Errorf("segment %d: %w", i, err)
			}
			res.Segments[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		opsf("run %s failed: %v", res.RunID, err)
		return Result{RunID: res.RunID}, err
	}

	res.Total = stats.NewWithThresholds(cfg.Thresholds)
	for i := range res.Segments {
		res.Total.Merge(res.Segments[i])
		res.Samples += len(segments[i])
	}

	diagf("run %s merged %d segments (%d samples) in %s", res.RunID, len(segments), res.Samples, time.Since(started))
	return res, nil
}

func aggregateSegment(ctx context.Context, seg []trackpoint.TrackPoint, cfg stats.UpdaterConfig) (stats.TrackStatistics, error) {
	u := stats.NewUpdater(cfg, nil)
	for i, p := range seg {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats.TrackStatistics{}, err
			}
		}
		if err := u.Add(p); err != nil {
			return stats.TrackStatistics{}, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return u.Stats(), nil
}
