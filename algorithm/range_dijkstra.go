package algorithm

import (
	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

type PQItem struct {
	item int32
	dist float64
}

// Computes the network distance from the start nodes to every node within
// max_range meters. Starts are given as (node, initial distance).
// Nodes outside the range are missing from the result.
func CalcRangeDijkstra(g graph.IGraph, starts Array[Tuple[int32, float64]], max_range float64) Dict[int32, float64] {
	heap := NewPriorityQueue[PQItem, float64](100)
	explorer := g.GetGraphExplorer()
	node_dists := NewDict[int32, float64](100)

	for _, item := range starts {
		start := item.A
		dist := item.B
		if dist > max_range {
			continue
		}
		if node_dists.ContainsKey(start) && node_dists[start] <= dist {
			continue
		}
		node_dists[start] = dist
		heap.Enqueue(PQItem{start, dist}, dist)
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		if node_dists[curr_id] < curr_dist {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			new_length := curr_dist + explorer.GetEdgeWeight(ref)
			if new_length > max_range {
				return
			}
			if other_dist, ok := node_dists[other_id]; !ok || other_dist > new_length {
				node_dists[other_id] = new_length
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
	return node_dists
}
