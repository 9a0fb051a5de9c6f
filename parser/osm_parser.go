package parser

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// osm parser
//*******************************************

// Reads points of interest and roads from an osm pbf file.
//
// Tagged nodes accepted by the decoder become points, ways accepted as
// highways become roads. The file is scanned three times: ways to collect
// the referenced nodes, nodes for points and coordinates, ways again to
// build the road geometries.
func ParseOSM(ctx context.Context, pbf_file string, decoder IOSMDecoder) (Array[PointRecord], Array[RoadRecord], ParseStats, error) {
	file, err := os.Open(pbf_file)
	if err != nil {
		return nil, nil, ParseStats{}, err
	}
	defer file.Close()

	open := func(skip_nodes, skip_ways bool) (osm.Scanner, error) {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
		scanner.SkipNodes = skip_nodes
		scanner.SkipWays = skip_ways
		scanner.SkipRelations = true
		return scanner, nil
	}
	points, roads, stats, err := ParseOSMScanners(open, decoder)
	if err != nil {
		return nil, nil, stats, err
	}
	slog.Info(fmt.Sprintf("parsed %v points and %v roads from %v", points.Length(), roads.Length(), pbf_file))
	return points, roads, stats, nil
}

// Reads points of interest and roads from an osm xml file, same as ParseOSM.
func ParseOSMXML(ctx context.Context, xml_file string, decoder IOSMDecoder) (Array[PointRecord], Array[RoadRecord], ParseStats, error) {
	file, err := os.Open(xml_file)
	if err != nil {
		return nil, nil, ParseStats{}, err
	}
	defer file.Close()

	open := func(skip_nodes, skip_ways bool) (osm.Scanner, error) {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return osmxml.New(ctx, file), nil
	}
	points, roads, stats, err := ParseOSMScanners(open, decoder)
	if err != nil {
		return nil, nil, stats, err
	}
	slog.Info(fmt.Sprintf("parsed %v points and %v roads from %v", points.Length(), roads.Length(), xml_file))
	return points, roads, stats, nil
}

// Opens a fresh scanner over the osm data for every pass. Skip flags are
// hints only, handlers filter objects by type themselves.
type ScannerFactory func(skip_nodes, skip_ways bool) (osm.Scanner, error)

// Runs the way, node and way passes over scanners created by open.
func ParseOSMScanners(open ScannerFactory, decoder IOSMDecoder) (Array[PointRecord], Array[RoadRecord], ParseStats, error) {
	stats := ParseStats{}
	osm_nodes := NewDict[int64, geo.Coord](10000)
	points := NewList[PointRecord](1000)
	roads := NewList[RoadRecord](1000)

	scanner, err := open(true, false)
	if err != nil {
		return nil, nil, stats, err
	}
	_InitWayHandler(scanner, decoder, osm_nodes)
	if err := _CloseScanner(scanner); err != nil {
		return nil, nil, stats, err
	}
	scanner, err = open(false, true)
	if err != nil {
		return nil, nil, stats, err
	}
	_NodeHandler(scanner, decoder, osm_nodes, &points)
	if err := _CloseScanner(scanner); err != nil {
		return nil, nil, stats, err
	}
	scanner, err = open(true, false)
	if err != nil {
		return nil, nil, stats, err
	}
	_WayHandler(scanner, decoder, osm_nodes, &roads, &stats)
	if err := _CloseScanner(scanner); err != nil {
		return nil, nil, stats, err
	}

	stats.Read += points.Length()
	return Array[PointRecord](points), Array[RoadRecord](roads), stats, nil
}

func _CloseScanner(scanner osm.Scanner) error {
	err := scanner.Err()
	scanner.Close()
	return err
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, geo.Coord]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			// unresolved until the node pass
			for _, ref := range object.Nodes.NodeIDs() {
				osm_nodes[int64(ref)] = geo.Coord{math.NaN(), math.NaN()}
			}
		default:
			continue
		}
	}
}

func _NodeHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, geo.Coord], points *List[PointRecord]) {
	c := 0
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			c += 1
			if c%100000 == 0 {
				slog.Debug(fmt.Sprintf("%v nodes scanned", c))
			}
			loc := geo.NewCoord(object.Lon, object.Lat)
			id := int64(object.ID)
			if osm_nodes.ContainsKey(id) {
				osm_nodes[id] = loc
			}
			tags := Dict[string, string](object.TagMap())
			if len(tags) == 0 || !decoder.IsPOI(tags) {
				continue
			}
			points.Add(PointRecord{
				Loc:        loc,
				Attributes: decoder.DecodePOI(tags),
			})
		default:
			continue
		}
	}
}

func _WayHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, geo.Coord], roads *List[RoadRecord], stats *ParseStats) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			refs := object.Nodes.NodeIDs()
			coords := make(geo.CoordArray, 0, len(refs))
			for _, ref := range refs {
				coord := osm_nodes.Get(int64(ref))
				if !coord.IsValid() {
					continue
				}
				coords = append(coords, coord)
			}
			if len(coords) < 2 {
				stats.Skipped += 1
				continue
			}
			roads.Add(RoadRecord{Coords: coords})
			stats.Read += 1
		default:
			continue
		}
	}
}
