package routing

import (
	"math"

	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

type flag_spt struct {
	path_length float64
	visited     bool
}

// One-to-many Dijkstra computing the distance from a start node to every
// node of the graph. The solver can be reused for several starts but not
// concurrently.
type ShortestPathTree struct {
	heap  PriorityQueue[int32, float64]
	graph graph.IGraph
	flags Array[flag_spt]
}

func NewShortestPathTree(g graph.IGraph) *ShortestPathTree {
	return &ShortestPathTree{
		graph: g,
		flags: NewArray[flag_spt](g.NodeCount()),
		heap:  NewPriorityQueue[int32, float64](100),
	}
}

func (self *ShortestPathTree) CalcShortestPathTree(start int32) {
	for i := 0; i < len(self.flags); i++ {
		self.flags[i] = flag_spt{path_length: math.Inf(1)}
	}
	self.heap.Clear()
	self.heap.Enqueue(start, 0)
	self.flags[start].path_length = 0
	explorer := self.graph.GetGraphExplorer()

	for {
		curr_id, ok := self.heap.Dequeue()
		if !ok {
			return
		}
		curr_flag := self.flags[curr_id]
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		self.flags[curr_id] = curr_flag
		explorer.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags[other_id]
			if other_flag.visited {
				return
			}
			new_length := curr_flag.path_length + explorer.GetEdgeWeight(ref)
			if new_length < other_flag.path_length {
				other_flag.path_length = new_length
				self.flags[other_id] = other_flag
				self.heap.Enqueue(other_id, new_length)
			}
		})
	}
}

// Distance to node from the last start, +Inf if unreachable.
func (self *ShortestPathTree) GetDistance(node int32) float64 {
	return self.flags[node].path_length
}

// Distances from start to every node, +Inf where unreachable.
func ShortestDistances(g graph.IGraph, start int32) (Array[float64], error) {
	if !g.IsNode(start) {
		return nil, ErrNodeNotInGraph
	}
	spt := NewShortestPathTree(g)
	spt.CalcShortestPathTree(start)
	dists := NewArray[float64](g.NodeCount())
	for i := range dists {
		dists[i] = spt.GetDistance(int32(i))
	}
	return dists, nil
}
