package main

import (
	"fmt"

	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

// Maps a coordinate to its closest graph node.
func SnapCoord(g graph.IGraph, coord geo.Coord) (int32, error) {
	if !coord.IsValid() {
		return -1, fmt.Errorf("%w %v", ErrInvalidCoordinate, coord)
	}
	node, ok := g.GetClosestNode(coord)
	if !ok {
		return -1, ErrEmptyGraph
	}
	return node, nil
}

func MapCoordsToNodes(g graph.IGraph, coords []geo.Coord) (Array[int32], error) {
	nodes := NewArray[int32](len(coords))
	for i, coord := range coords {
		id, err := SnapCoord(g, coord)
		if err != nil {
			return nil, fmt.Errorf("coordinate %v: %w", i, err)
		}
		nodes[i] = id
	}
	return nodes, nil
}
