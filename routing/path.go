package routing

import (
	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

// Ordered node sequence from start to end with its total weight in meters.
type Path struct {
	nodes Array[int32]
	cost  float64
}

func NewPath(nodes Array[int32], cost float64) Path {
	return Path{
		nodes: nodes,
		cost:  cost,
	}
}

func (self Path) Nodes() Array[int32] {
	return self.nodes
}
func (self Path) Cost() float64 {
	return self.cost
}
func (self Path) Length() int {
	return self.nodes.Length()
}
func (self Path) Start() int32 {
	return self.nodes[0]
}
func (self Path) End() int32 {
	return self.nodes[len(self.nodes)-1]
}

// Coordinates of the path nodes in order.
func (self Path) GetGeometry(g graph.IGraph) geo.CoordArray {
	coords := make(geo.CoordArray, len(self.nodes))
	for i, node := range self.nodes {
		coords[i] = g.GetNodeGeom(node)
	}
	return coords
}
