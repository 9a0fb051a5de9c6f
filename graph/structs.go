package graph

import (
	"github.com/ttpr0/poi-routing/geo"
)

//*******************************************
// graph structs
//*******************************************

// Point of interest. The node id is its index in the graph.
type Node struct {
	Loc geo.Coord
	// Optional display attributes (string or number values).
	Attributes map[string]any
}

// Undirected edge, weight is the great-circle distance in meters.
type Edge struct {
	NodeA  int32
	NodeB  int32
	Weight float64
}

//*******************************************
// edgeref struct
//*******************************************

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}
