// Command trackstats aggregates the statistics of a GPX track.
//
// Usage:
//
//	trackstats -gpx morning.gpx [-config tuning.json] [-lift 46.02,7.75]... [-units kmph]
//
// Thresholds come from the optional JSON tuning file and TRACKSTATS_*
// environment variables, in that order.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/banshee-data/trackstats/internal/chairlift"
	"github.com/banshee-data/trackstats/internal/config"
	"github.com/banshee-data/trackstats/internal/fsutil"
	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/banshee-data/trackstats/internal/gpxsource"
	"github.com/banshee-data/trackstats/internal/monitoring"
	"github.com/banshee-data/trackstats/internal/pipeline"
	"github.com/banshee-data/trackstats/internal/stats"
	"github.com/banshee-data/trackstats/internal/units"
	"github.com/banshee-data/trackstats/internal/version"
)

// liftFlag collects repeated -lift lat,lon values.
type liftFlag []geo.Point

func (l *liftFlag) String() string {
	parts := make([]string, 0, len(*l))
	for _, p := range *l {
		parts = append(parts, fmt.Sprintf("%g,%g", p.Lat, p.Lon))
	}
	return strings.Join(parts, " ")
}

func (l *liftFlag) Set(v string) error {
	p, err := parseLatLon(v)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func parseLatLon(v string) (geo.Point, error) {
	latStr, lonStr, ok := strings.Cut(v, ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("expected lat,lon, got %q", v)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude %q: %w", lonStr, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return geo.Point{}, fmt.Errorf("coordinate out of range: %g,%g", lat, lon)
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}

type options struct {
	gpxPath    string
	configPath string
	lifts      liftFlag
	speedUnits string
	verbose    bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("trackstats", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.gpxPath, "gpx", "", "GPX file to aggregate (required)")
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON tuning file (optional)")
	fs.Var(&opts.lifts, "lift", "Lift boarding area as lat,lon (repeatable)")
	fs.StringVar(&opts.speedUnits, "units", "", "Speed units for output: "+units.GetValidUnitsString())
	fs.BoolVar(&opts.verbose, "v", false, "Log lift transitions and merges to stderr")
	fs.BoolVar(&opts.version, "version", false, "Print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.gpxPath == "" {
		return nil, errors.New("-gpx is required")
	}
	if opts.speedUnits != "" && !units.IsValid(opts.speedUnits) {
		return nil, fmt.Errorf("invalid -units %q, must be one of: %s", opts.speedUnits, units.GetValidUnitsString())
	}
	return opts, nil
}

func loadConfig(fsys fsutil.FileSystem, opts *options) (*config.TuningConfig, error) {
	cfg := config.DefaultTuningConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadTuningConfigFS(fsys, opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if opts.speedUnits != "" {
		cfg.SpeedUnits = &opts.speedUnits
	}
	for _, p := range opts.lifts {
		cfg.LiftStations = append(cfg.LiftStations, config.LiftStation{Lat: p.Lat, Lon: p.Lon})
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, fsys fsutil.FileSystem, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintf(stdout, "trackstats %s\n", version.String())
		return nil
	}

	cfg, err := loadConfig(fsys, opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if opts.verbose {
		chairlift.SetLogWriters(stderr, stderr, nil)
		stats.SetLogWriters(stderr, stderr, nil)
		pipeline.SetLogWriters(stderr, stderr, nil)
	}

	data, err := fsys.ReadFile(opts.gpxPath)
	if err != nil {
		return fmt.Errorf("read GPX file: %w", err)
	}
	segments, err := gpxsource.ReadSegments(bytes.NewReader(data))
	if err != nil {
		return err
	}

	res, err := pipeline.AggregateSegments(ctx, segments, stats.UpdaterConfigFromTuning(cfg))
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", opts.gpxPath, err)
	}
	monitoring.Logf("run %s: %d segments, %d samples", res.RunID, len(res.Segments), res.Samples)

	avg, err := gpxsource.AverageSpeed(bytes.NewReader(data))
	if err != nil {
		return err
	}

	unit := cfg.GetSpeedUnits()
	fmt.Fprintln(stdout, res.Total.String())
	fmt.Fprintf(stdout, "average speed: %.2f %s\n", avg.Convert(unit), unit)
	fmt.Fprintf(stdout, "max speed: %.2f %s\n", res.Total.MaxSpeed().Convert(unit), unit)
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, fsutil.OSFileSystem{}, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("trackstats: %v", err)
	}
}
