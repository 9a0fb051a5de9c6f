package routing

import (
	"math"

	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

type flag_sp struct {
	path_length float64
	prev_node   int32
	visited     bool
}

// One-to-one Dijkstra. Every instance owns its heap and flags, so instances
// can run in parallel on the same graph.
type Dijkstra struct {
	heap     PriorityQueue[int32, float64]
	start_id int32
	end_id   int32
	graph    graph.IGraph
	flags    Array[flag_sp]
	found    bool
}

func NewDijkstra(g graph.IGraph, start, end int32) *Dijkstra {
	d := Dijkstra{
		graph:    g,
		start_id: start,
		end_id:   end,
	}

	flags := NewArray[flag_sp](g.NodeCount())
	for i := 0; i < len(flags); i++ {
		flags[i].path_length = math.Inf(1)
		flags[i].prev_node = -1
	}
	flags[start].path_length = 0
	d.flags = flags

	heap := NewPriorityQueue[int32, float64](100)
	heap.Enqueue(start, 0)
	d.heap = heap

	return &d
}

func (self *Dijkstra) CalcShortestPath() bool {
	explorer := self.graph.GetGraphExplorer()
	for {
		curr_id, ok := self.heap.Dequeue()
		if !ok {
			return false
		}
		curr_flag := self.flags[curr_id]
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		self.flags[curr_id] = curr_flag
		if curr_id == self.end_id {
			self.found = true
			return true
		}
		explorer.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags[other_id]
			if other_flag.visited {
				return
			}
			new_length := curr_flag.path_length + explorer.GetEdgeWeight(ref)
			if new_length < other_flag.path_length {
				other_flag.prev_node = curr_id
				other_flag.path_length = new_length
				self.flags[other_id] = other_flag
				self.heap.Enqueue(other_id, new_length)
			}
		})
	}
}

func (self *Dijkstra) GetShortestPath() Path {
	if !self.found {
		return Path{}
	}
	nodes := NewList[int32](10)
	curr_id := self.end_id
	for curr_id != -1 {
		nodes.Add(curr_id)
		if curr_id == self.start_id {
			break
		}
		curr_id = self.flags[curr_id].prev_node
	}
	// reverse into start -> end order
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return NewPath(Array[int32](nodes), self.flags[self.end_id].path_length)
}
