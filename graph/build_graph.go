package graph

import (
	"fmt"

	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// build options
//*******************************************

const DEFAULT_SNAP_THRESHOLD = 50.0

type BuildOptions struct {
	// Maximum distance in meters between a road vertex and the point it is
	// snapped to.
	SnapThreshold float64
}

func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		SnapThreshold: DEFAULT_SNAP_THRESHOLD,
	}
}

// Counters of the anomalies absorbed while building a graph.
type BuildStats struct {
	Roads          int `json:"roads"`
	MalformedRoads int `json:"malformed_roads"`
	UnmatchedPairs int `json:"unmatched_pairs"`
	SelfLoops      int `json:"self_loops"`
	DuplicateEdges int `json:"duplicate_edges"`
}

//*******************************************
// build graph
//*******************************************

// Builds the routing graph from points of interest and road geometries.
//
// Every point becomes a node with its index as id. Consecutive road vertices
// are snapped onto points (first point within the snap threshold) and
// connected by an edge weighted with the distance between the two points.
// Unmatched vertices, self loops and roads with less than two vertices are
// skipped and counted.
func BuildGraph(points Array[Node], roads Array[geo.CoordArray], options BuildOptions) (*Graph, BuildStats) {
	stats := BuildStats{Roads: roads.Length()}

	coords := make(geo.CoordArray, points.Length())
	for i, p := range points {
		coords[i] = p.Loc
	}
	index := NewGraphIndex(coords)

	edges := NewList[Edge](roads.Length())
	edge_mapping := NewDict[Tuple[int32, int32], int](roads.Length())
	for _, road := range roads {
		if len(road) < 2 {
			stats.MalformedRoads += 1
			continue
		}
		// each vertex is shared by two consecutive pairs, snap it only once
		snapped := make([]int32, len(road))
		for i, vertex := range road {
			idx, ok := index.GetFirstNodeWithin(vertex, options.SnapThreshold)
			if !ok {
				slog.Debug(fmt.Sprintf("no point found within %v meters for %v", options.SnapThreshold, vertex))
				idx = -1
			}
			snapped[i] = idx
		}
		for i := 0; i < len(road)-1; i++ {
			idx1 := snapped[i]
			idx2 := snapped[i+1]
			if idx1 == -1 || idx2 == -1 {
				stats.UnmatchedPairs += 1
				continue
			}
			if idx1 == idx2 {
				stats.SelfLoops += 1
				continue
			}
			weight := geo.HaversineDistance(coords[idx1], coords[idx2])
			key := MakeTuple(min(idx1, idx2), max(idx1, idx2))
			if edge_mapping.ContainsKey(key) {
				id := edge_mapping.Get(key)
				edge := edges.Get(id)
				edge.Weight = weight
				edges.Set(id, edge)
				stats.DuplicateEdges += 1
				continue
			}
			edges.Add(Edge{
				NodeA:  idx1,
				NodeB:  idx2,
				Weight: weight,
			})
			edge_mapping.Set(key, edges.Length()-1)
		}
	}

	g := _NewGraph(points, Array[Edge](edges))
	slog.Info(fmt.Sprintf("graph constructed with %v nodes and %v edges", g.NodeCount(), g.EdgeCount()))
	if stats.UnmatchedPairs > 0 || stats.MalformedRoads > 0 {
		slog.Info(fmt.Sprintf("skipped %v unmatched segments and %v malformed roads", stats.UnmatchedPairs, stats.MalformedRoads))
	}
	return g, stats
}
