package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm/osmxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
)

func TestParseGeoJSONPoints(t *testing.T) {
	data, err := os.ReadFile("./testdata/points.json")
	require.NoError(t, err)

	points, stats, err := ParseGeoJSONPoints(data)
	require.NoError(t, err)

	require.Equal(t, 3, points.Length())
	assert.Equal(t, 3, stats.Read)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, geo.Coord{0, 0}, points[0].Loc)
	assert.Equal(t, "Entrance", points[0].Attributes["name"])
	assert.Equal(t, "gate", points[0].Attributes["category"])
	assert.Equal(t, geo.Coord{0.001, 0.001}, points[2].Loc)
	assert.Equal(t, 2.0, points[2].Attributes["floors"])
}

func TestParseGeoJSONRoads(t *testing.T) {
	data, err := os.ReadFile("./testdata/roads.json")
	require.NoError(t, err)

	roads, stats, err := ParseGeoJSONRoads(data)
	require.NoError(t, err)

	require.Equal(t, 3, roads.Length())
	assert.Equal(t, 2, stats.Read)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, geo.CoordArray{{0, 0.00001}, {0, 0.0005}, {0, 0.00099}}, roads[0].Coords)
	assert.Equal(t, geo.CoordArray{{5, 5}, {6, 6}}, roads[2].Coords)
}

func TestParseGeoJSONInvalid(t *testing.T) {
	_, _, err := ParseGeoJSONPoints([]byte(`{"type": "Feature"}`))
	assert.Error(t, err)
	_, _, err = ParseGeoJSONRoads([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseCSVPoints(t *testing.T) {
	points, stats, err := ParseCSVPoints("./testdata/points.csv", ',')
	require.NoError(t, err)

	require.Equal(t, 3, points.Length())
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, "Fountain", points[1].Attributes["name"])
	assert.NotContains(t, points[1].Attributes, "category")
	assert.Equal(t, "museum", points[2].Attributes["category"])
}

func TestPointsToGeoJSON(t *testing.T) {
	points := Array[PointRecord]{
		{Loc: geo.Coord{3.07, 36.74}, Attributes: map[string]any{"name": "Entrance"}},
	}
	data, err := json.Marshal(PointsToGeoJSON(points))
	require.NoError(t, err)

	parsed, _, err := ParseGeoJSONPoints(data)
	require.NoError(t, err)
	assert.Equal(t, points, parsed)
}

func TestLoadSource(t *testing.T) {
	options := SourceOptions{
		Points: "./testdata/points.json",
		Roads:  "./testdata/roads.json",
	}
	points, roads, stats, err := LoadSource(context.Background(), options)
	require.NoError(t, err)
	assert.Equal(t, 3, points.Length())
	assert.Equal(t, 3, roads.Length())
	assert.Equal(t, []string{options.Points, options.Roads}, options.Files())
	assert.Equal(t, ParseStats{Read: 5, Skipped: 4}, stats)

	points, roads, _, err = LoadSource(context.Background(), SourceOptions{Points: "./testdata/points.csv"})
	require.NoError(t, err)
	assert.Equal(t, 3, points.Length())
	assert.Equal(t, 0, roads.Length())
}

func TestLoadSourceErrors(t *testing.T) {
	_, _, _, err := LoadSource(context.Background(), SourceOptions{})
	assert.Error(t, err)

	_, _, _, err = LoadSource(context.Background(), SourceOptions{Points: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, _, _, err = LoadSource(context.Background(), SourceOptions{Points: "./testdata/points.json", Roads: "./testdata/points.csv"})
	assert.Error(t, err)

	for _, file := range []string{"x.pbf", "x.PBF", "x.osm"} {
		_, _, _, err = LoadSource(context.Background(), SourceOptions{Points: filepath.Join(t.TempDir(), file)})
		assert.ErrorIs(t, err, os.ErrNotExist, file)
		assert.NotContains(t, err.Error(), "unsupported", file)
	}
}

func TestLoadSourceOSMPoints(t *testing.T) {
	options := SourceOptions{Points: "./testdata/small.osm", Roads: "./testdata/roads.json"}
	assert.Equal(t, []string{options.Points}, options.Files())

	points, roads, stats, err := LoadSource(context.Background(), options)
	require.NoError(t, err)
	assert.Equal(t, 1, points.Length())
	assert.Equal(t, 1, roads.Length())
	assert.Equal(t, ParseStats{Read: 2, Skipped: 1}, stats)

	options = SourceOptions{Points: "city.pbf"}
	assert.Equal(t, []string{"city.pbf"}, options.Files())
}

func TestPOIDecoder(t *testing.T) {
	decoder := &POIDecoder{}

	assert.True(t, decoder.IsValidHighway(Dict[string, string]{"highway": "footway"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"highway": "motorway"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"building": "yes"}))

	tags := Dict[string, string]{"tourism": "museum", "name": "Bardo"}
	assert.True(t, decoder.IsPOI(tags))
	assert.Equal(t, map[string]any{"name": "Bardo", "category": "museum"}, decoder.DecodePOI(tags))
	assert.False(t, decoder.IsPOI(Dict[string, string]{"name": "Main Street", "highway": "residential"}))
	assert.False(t, decoder.IsPOI(Dict[string, string]{"name": "Grande Poste", "highway": "bus_stop"}))
	assert.False(t, decoder.IsPOI(Dict[string, string]{"building": "yes"}))

	for _, key := range []string{"amenity", "tourism", "historic", "leisure", "shop"} {
		tags := Dict[string, string]{key: "x"}
		assert.True(t, decoder.IsPOI(tags), key)
		assert.Equal(t, map[string]any{"category": "x"}, decoder.DecodePOI(tags), key)
	}
	assert.True(t, decoder.IsPOI(Dict[string, string]{"name": "Jardin d'Essai"}))
	assert.Equal(t, map[string]any{"name": "Jardin", "category": "cafe"},
		decoder.DecodePOI(Dict[string, string]{"name": "Jardin", "shop": "bakery", "amenity": "cafe"}))
}

func TestParseOSMMissingFile(t *testing.T) {
	_, _, _, err := ParseOSM(context.Background(), "./testdata/missing.pbf", &POIDecoder{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, _, err = LoadSource(context.Background(), SourceOptions{OSM: "./testdata/missing.pbf"})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, _, err = ParseOSMXML(context.Background(), "./testdata/missing.osm", &POIDecoder{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseOSMXML(t *testing.T) {
	points, roads, stats, err := ParseOSMXML(context.Background(), "./testdata/small.osm", &POIDecoder{})
	require.NoError(t, err)

	require.Equal(t, 1, points.Length())
	assert.Equal(t, geo.Coord{3.0737, 36.7473}, points[0].Loc)
	assert.Equal(t, map[string]any{"name": "Bibliotheque", "category": "library"}, points[0].Attributes)

	require.Equal(t, 1, roads.Length())
	assert.Equal(t, geo.CoordArray{{3.0728, 36.7468}, {3.0732, 36.7470}, {3.0736, 36.7472}}, roads[0].Coords)

	assert.Equal(t, ParseStats{Read: 2, Skipped: 1}, stats)
}

func TestOSMHandlers(t *testing.T) {
	data, err := os.ReadFile("./testdata/small.osm")
	require.NoError(t, err)
	ctx := context.Background()
	decoder := &POIDecoder{}

	osm_nodes := NewDict[int64, geo.Coord](10)
	_InitWayHandler(osmxml.New(ctx, bytes.NewReader(data)), decoder, osm_nodes)
	// footway and residential refs, the building way is ignored
	assert.Equal(t, 5, osm_nodes.Length())
	for _, id := range []int64{1, 2, 3, 98, 99} {
		require.True(t, osm_nodes.ContainsKey(id), id)
		assert.False(t, osm_nodes.Get(id).IsValid(), id)
	}

	points := NewList[PointRecord](1)
	_NodeHandler(osmxml.New(ctx, bytes.NewReader(data)), decoder, osm_nodes, &points)
	assert.Equal(t, geo.Coord{3.0732, 36.7470}, osm_nodes.Get(2))
	assert.False(t, osm_nodes.Get(98).IsValid())
	assert.False(t, osm_nodes.ContainsKey(4))
	require.Equal(t, 1, points.Length())
	assert.Equal(t, "library", points.Get(0).Attributes["category"])

	roads := NewList[RoadRecord](1)
	stats := ParseStats{}
	_WayHandler(osmxml.New(ctx, bytes.NewReader(data)), decoder, osm_nodes, &roads, &stats)
	require.Equal(t, 1, roads.Length())
	assert.Len(t, roads.Get(0).Coords, 3)
	assert.Equal(t, ParseStats{Read: 1, Skipped: 1}, stats)
}

func TestParseStatsAdd(t *testing.T) {
	stats := ParseStats{Read: 1}
	stats.Add(ParseStats{Read: 2, Skipped: 3})
	stats.Add(ParseStats{})
	assert.Equal(t, ParseStats{Read: 3, Skipped: 3}, stats)
}
