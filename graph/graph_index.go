package graph

import (
	"github.com/ttpr0/poi-routing/geo"
)

//*******************************************
// snapping
//*******************************************

// Returns the index of the candidate closest to point.
//
// Ties are resolved in favour of the first candidate. Returns false if
// candidates is empty or point is not a valid coordinate.
func Nearest(point geo.Coord, candidates geo.CoordArray) (int32, bool) {
	if !point.IsValid() {
		return -1, false
	}
	best := int32(-1)
	best_dist := 0.0
	for i, c := range candidates {
		d := geo.HaversineDistance(point, c)
		if best == -1 || d < best_dist {
			best = int32(i)
			best_dist = d
		}
	}
	return best, best != -1
}

// Returns the index of the first candidate (in order) not farther than
// threshold meters from point.
//
// This is a first match, not the closest match: a closer candidate later in
// the list is ignored.
func NearestWithinThreshold(point geo.Coord, candidates geo.CoordArray, threshold float64) (int32, bool) {
	if !point.IsValid() {
		return -1, false
	}
	for i, c := range candidates {
		if geo.HaversineDistance(point, c) <= threshold {
			return int32(i), true
		}
	}
	return -1, false
}

//*******************************************
// graph index
//*******************************************

type IGraphIndex interface {
	GetClosestNode(point geo.Coord) (int32, bool)
	GetFirstNodeWithin(point geo.Coord, threshold float64) (int32, bool)
}

var _ IGraphIndex = &GraphIndex{}

// Linear index over the node coordinates in node order.
type GraphIndex struct {
	coords geo.CoordArray
}

func NewGraphIndex(coords geo.CoordArray) *GraphIndex {
	return &GraphIndex{
		coords: coords,
	}
}

func (self *GraphIndex) GetClosestNode(point geo.Coord) (int32, bool) {
	return Nearest(point, self.coords)
}

func (self *GraphIndex) GetFirstNodeWithin(point geo.Coord, threshold float64) (int32, bool) {
	return NearestWithinThreshold(point, self.coords, threshold)
}
