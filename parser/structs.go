package parser

import (
	"github.com/ttpr0/poi-routing/geo"
)

//*******************************************
// parser structs
//*******************************************

// Point of interest as read from the source data.
type PointRecord struct {
	Loc        geo.Coord
	Attributes map[string]any
}

// Road geometry as an ordered list of vertices.
type RoadRecord struct {
	Coords geo.CoordArray
}

// Counts of records read and skipped by a parser.
type ParseStats struct {
	Read    int `json:"read"`
	Skipped int `json:"skipped"`
}

func (self *ParseStats) Add(other ParseStats) {
	self.Read += other.Read
	self.Skipped += other.Skipped
}
