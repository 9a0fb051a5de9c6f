package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetNode(node int32) Node
	GetEdge(edge int32) Edge
	GetNodeGeom(node int32) geo.Coord
	GetClosestNode(point geo.Coord) (int32, bool)
}

// Explorers are read-only views and may be used from several goroutines.
type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every edge.
	ForAdjacentEdges(node int32, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef) float64
	GetNodeDegree(node int32) int
}

var ErrInvalidEdge = errors.New("invalid edge")

//*******************************************
// graph
//******************************************

var _ IGraph = &Graph{}

// Immutable undirected graph. Nodes are identified by their index.
type Graph struct {
	nodes    Array[Node]
	edges    Array[Edge]
	topology _AdjacencyArray
	index    *GraphIndex
}

// Creates a graph from nodes and edges.
//
// Fails if an edge references an unknown node, is a self loop or carries a
// negative or non finite weight.
func NewGraph(nodes Array[Node], edges Array[Edge]) (*Graph, error) {
	count := int32(nodes.Length())
	for i, edge := range edges {
		if edge.NodeA < 0 || edge.NodeA >= count || edge.NodeB < 0 || edge.NodeB >= count {
			return nil, fmt.Errorf("%w %v: node out of range", ErrInvalidEdge, i)
		}
		if edge.NodeA == edge.NodeB {
			return nil, fmt.Errorf("%w %v: self loop at node %v", ErrInvalidEdge, i, edge.NodeA)
		}
		if edge.Weight < 0 || math.IsNaN(edge.Weight) || math.IsInf(edge.Weight, 0) {
			return nil, fmt.Errorf("%w %v: weight %v", ErrInvalidEdge, i, edge.Weight)
		}
	}
	return _NewGraph(nodes, edges), nil
}

func _NewGraph(nodes Array[Node], edges Array[Edge]) *Graph {
	coords := make(geo.CoordArray, nodes.Length())
	for i, node := range nodes {
		coords[i] = node.Loc
	}
	return &Graph{
		nodes:    nodes,
		edges:    edges,
		topology: _BuildTopology(nodes.Length(), edges),
		index:    NewGraphIndex(coords),
	}
}

func (self *Graph) GetGraphExplorer() IGraphExplorer {
	return &BaseGraphExplorer{
		graph: self,
	}
}
func (self *Graph) NodeCount() int {
	return self.nodes.Length()
}
func (self *Graph) EdgeCount() int {
	return self.edges.Length()
}
func (self *Graph) IsNode(node int32) bool {
	return node >= 0 && int(node) < self.nodes.Length()
}
func (self *Graph) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *Graph) GetEdge(edge int32) Edge {
	return self.edges[edge]
}
func (self *Graph) GetNodeGeom(node int32) geo.Coord {
	return self.nodes[node].Loc
}
func (self *Graph) GetClosestNode(point geo.Coord) (int32, bool) {
	return self.index.GetClosestNode(point)
}

// Returns the edge between a and b if present.
func (self *Graph) FindEdge(a, b int32) (Edge, bool) {
	if !self.IsNode(a) || !self.IsNode(b) {
		return Edge{}, false
	}
	for _, ref := range self.topology.GetAdjacency(a) {
		if ref.OtherID == b {
			return self.edges[ref.EdgeID], true
		}
	}
	return Edge{}, false
}

//*******************************************
// graph explorer
//******************************************

type BaseGraphExplorer struct {
	graph *Graph
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, callback func(EdgeRef)) {
	for _, ref := range self.graph.topology.GetAdjacency(node) {
		callback(ref)
	}
}
func (self *BaseGraphExplorer) GetEdgeWeight(edge EdgeRef) float64 {
	return self.graph.edges[edge.EdgeID].Weight
}
func (self *BaseGraphExplorer) GetNodeDegree(node int32) int {
	return self.graph.topology.GetDegree(node)
}
