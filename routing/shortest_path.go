package routing

import (
	"errors"
	"fmt"

	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

var ErrNodeNotInGraph = errors.New("node not in graph")

type IShortestPath interface {
	// Runs the search, returns false if no path exists.
	CalcShortestPath() bool
	// Only valid after CalcShortestPath returned true.
	GetShortestPath() Path
}

// Computes the shortest path between two nodes of g.
//
// Returns ErrNodeNotInGraph if start or end is not a node of g and an empty
// Optional if end is not reachable from start.
func ShortestPath(g graph.IGraph, start, end int32) (Optional[Path], error) {
	if !g.IsNode(start) {
		return None[Path](), fmt.Errorf("%w: start %v", ErrNodeNotInGraph, start)
	}
	if !g.IsNode(end) {
		return None[Path](), fmt.Errorf("%w: end %v", ErrNodeNotInGraph, end)
	}
	var alg IShortestPath = NewDijkstra(g, start, end)
	if !alg.CalcShortestPath() {
		return None[Path](), nil
	}
	return Some(alg.GetShortestPath()), nil
}
