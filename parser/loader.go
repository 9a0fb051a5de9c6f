package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

//*******************************************
// source loader
//*******************************************

type SourceOptions struct {
	// Points file, .json/.geojson or .csv, an osm .pbf/.osm file also
	// provides the roads
	Points string `yaml:"points"`
	// Roads file, .json/.geojson
	Roads string `yaml:"roads"`
	// osm .pbf or .osm file providing both points and roads, used if Points is empty
	OSM string `yaml:"osm"`
	// Delimiter of csv point files, defaults to ','
	CSVDelimiter string `yaml:"csv-delimiter"`
}

// Files the source is read from.
func (self SourceOptions) Files() []string {
	files := make([]string, 0, 2)
	if self.Points == "" {
		if self.OSM != "" {
			files = append(files, self.OSM)
		}
		return files
	}
	files = append(files, self.Points)
	if self.Roads != "" && !_IsOSMFile(self.Points) {
		files = append(files, self.Roads)
	}
	return files
}

func (self SourceOptions) _Delimiter() rune {
	if self.CSVDelimiter == "" {
		return ','
	}
	return []rune(self.CSVDelimiter)[0]
}

// Loads points and roads of the configured source. An osm pbf file given as
// points provides the roads as well, separate point and road files are read
// concurrently. The returned stats sum up all files read.
func LoadSource(ctx context.Context, options SourceOptions) (Array[PointRecord], Array[RoadRecord], ParseStats, error) {
	if options.Points == "" {
		if options.OSM == "" {
			return nil, nil, ParseStats{}, fmt.Errorf("no points or osm file configured")
		}
		return LoadOSM(ctx, options.OSM)
	}
	if _IsOSMFile(options.Points) {
		return LoadOSM(ctx, options.Points)
	}

	var points Array[PointRecord]
	var roads Array[RoadRecord]
	var point_stats, road_stats ParseStats
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		points, point_stats, err = LoadPoints(options.Points, options._Delimiter())
		return err
	})
	if options.Roads != "" {
		group.Go(func() error {
			var err error
			roads, road_stats, err = LoadRoads(options.Roads)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, ParseStats{}, err
	}
	stats := ParseStats{}
	stats.Add(point_stats)
	stats.Add(road_stats)
	return points, roads, stats, nil
}

// Reads points and roads from an osm pbf or osm xml file.
func LoadOSM(ctx context.Context, file string) (Array[PointRecord], Array[RoadRecord], ParseStats, error) {
	var points Array[PointRecord]
	var roads Array[RoadRecord]
	var stats ParseStats
	var err error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".pbf":
		points, roads, stats, err = ParseOSM(ctx, file, &POIDecoder{})
	case ".osm":
		points, roads, stats, err = ParseOSMXML(ctx, file, &POIDecoder{})
	default:
		return nil, nil, stats, fmt.Errorf("unsupported osm file %s", file)
	}
	if err != nil {
		return nil, nil, stats, fmt.Errorf("failed to load osm data from %s: %w", file, err)
	}
	return points, roads, stats, nil
}

func _IsOSMFile(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".pbf", ".osm":
		return true
	default:
		return false
	}
}

func LoadPoints(file string, delimiter rune) (Array[PointRecord], ParseStats, error) {
	var points Array[PointRecord]
	var stats ParseStats
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		var err error
		points, stats, err = ParseCSVPoints(file, delimiter)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to load points from %s: %w", file, err)
		}
	case ".json", ".geojson":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to load points from %s: %w", file, err)
		}
		points, stats, err = ParseGeoJSONPoints(data)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to load points from %s: %w", file, err)
		}
	default:
		return nil, stats, fmt.Errorf("unsupported points file %s", file)
	}
	slog.Info(fmt.Sprintf("loaded %v points from %v (%v skipped)", stats.Read, file, stats.Skipped))
	return points, stats, nil
}

func LoadRoads(file string) (Array[RoadRecord], ParseStats, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json", ".geojson":
	default:
		return nil, ParseStats{}, fmt.Errorf("unsupported roads file %s", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("failed to load roads from %s: %w", file, err)
	}
	roads, stats, err := ParseGeoJSONRoads(data)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to load roads from %s: %w", file, err)
	}
	slog.Info(fmt.Sprintf("loaded %v roads from %v (%v skipped)", roads.Length(), file, stats.Skipped))
	return roads, stats, nil
}
