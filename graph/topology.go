package graph

import (
	. "github.com/ttpr0/poi-routing/util"
)

//*******************************************
// adjacency array
//*******************************************

// Compressed adjacency of an undirected graph. Every edge is stored once
// for each of its endpoints.
type _AdjacencyArray struct {
	offsets Array[int32]
	refs    Array[EdgeRef]
}

func _BuildTopology(node_count int, edges Array[Edge]) _AdjacencyArray {
	offsets := NewArray[int32](node_count + 1)
	for _, edge := range edges {
		offsets[edge.NodeA+1] += 1
		offsets[edge.NodeB+1] += 1
	}
	for i := 1; i <= node_count; i++ {
		offsets[i] += offsets[i-1]
	}
	refs := NewArray[EdgeRef](int(offsets[node_count]))
	fill := NewArray[int32](node_count)
	for id, edge := range edges {
		a := offsets[edge.NodeA] + fill[edge.NodeA]
		refs[a] = EdgeRef{EdgeID: int32(id), OtherID: edge.NodeB}
		fill[edge.NodeA] += 1
		b := offsets[edge.NodeB] + fill[edge.NodeB]
		refs[b] = EdgeRef{EdgeID: int32(id), OtherID: edge.NodeA}
		fill[edge.NodeB] += 1
	}
	return _AdjacencyArray{
		offsets: offsets,
		refs:    refs,
	}
}

func (self *_AdjacencyArray) GetDegree(node int32) int {
	return int(self.offsets[node+1] - self.offsets[node])
}

func (self *_AdjacencyArray) GetAdjacency(node int32) []EdgeRef {
	return self.refs[self.offsets[node]:self.offsets[node+1]]
}
