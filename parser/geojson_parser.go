package parser

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// geojson parser
//*******************************************

// Features are decoded one by one so a broken feature does not fail the
// whole collection.
func _DecodeFeatures(data []byte) ([]json.RawMessage, error) {
	var collection struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to decode feature collection: %w", err)
	}
	if collection.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", collection.Type)
	}
	return collection.Features, nil
}

// Reads a FeatureCollection of Point features. Feature properties become
// the point attributes, features without a valid point geometry are skipped.
func ParseGeoJSONPoints(data []byte) (Array[PointRecord], ParseStats, error) {
	stats := ParseStats{}
	raw_features, err := _DecodeFeatures(data)
	if err != nil {
		return nil, stats, err
	}
	points := NewList[PointRecord](len(raw_features))
	for i, raw := range raw_features {
		feature, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			slog.Debug(fmt.Sprintf("skipping point feature %v: %v", i, err))
			stats.Skipped += 1
			continue
		}
		point, ok := feature.Geometry.(orb.Point)
		if !ok || !geo.FromPoint(point).IsValid() {
			slog.Debug(fmt.Sprintf("skipping point feature %v: no valid point geometry", i))
			stats.Skipped += 1
			continue
		}
		attributes := make(map[string]any, len(feature.Properties))
		for key, val := range feature.Properties {
			attributes[key] = val
		}
		points.Add(PointRecord{
			Loc:        geo.FromPoint(point),
			Attributes: attributes,
		})
		stats.Read += 1
	}
	return Array[PointRecord](points), stats, nil
}

// Reads a FeatureCollection of LineString and MultiLineString features.
// Every line becomes one road, other geometries are skipped.
func ParseGeoJSONRoads(data []byte) (Array[RoadRecord], ParseStats, error) {
	stats := ParseStats{}
	raw_features, err := _DecodeFeatures(data)
	if err != nil {
		return nil, stats, err
	}
	roads := NewList[RoadRecord](len(raw_features))
	for i, raw := range raw_features {
		feature, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			slog.Debug(fmt.Sprintf("skipping road feature %v: %v", i, err))
			stats.Skipped += 1
			continue
		}
		switch geom := feature.Geometry.(type) {
		case orb.LineString:
			roads.Add(RoadRecord{Coords: geo.FromLineString(geom)})
			stats.Read += 1
		case orb.MultiLineString:
			for _, line := range geom {
				roads.Add(RoadRecord{Coords: geo.FromLineString(line)})
			}
			stats.Read += 1
		default:
			slog.Debug(fmt.Sprintf("skipping road feature %v: unsupported geometry", i))
			stats.Skipped += 1
		}
	}
	return Array[RoadRecord](roads), stats, nil
}

// Encodes points as a FeatureCollection of Point features.
func PointsToGeoJSON(points Array[PointRecord]) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		feature := geojson.NewFeature(p.Loc.ToPoint())
		for key, val := range p.Attributes {
			feature.Properties[key] = val
		}
		fc.Append(feature)
	}
	return fc
}
