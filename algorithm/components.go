package algorithm

import (
	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

// Labels every node with the id of its connected component. Component ids
// are assigned in order of their lowest node.
func ConnectedComponents(g graph.IGraph) Array[int32] {
	explorer := g.GetGraphExplorer()
	groups := NewArray[int32](g.NodeCount())
	for i := range groups {
		groups[i] = -1
	}

	stack := NewList[int32](100)
	group := int32(0)
	for i := 0; i < g.NodeCount(); i++ {
		if groups[i] != -1 {
			continue
		}
		groups[i] = group
		stack.Add(int32(i))
		for stack.Length() > 0 {
			curr := stack[stack.Length()-1]
			stack = stack[:stack.Length()-1]
			explorer.ForAdjacentEdges(curr, func(ref graph.EdgeRef) {
				if groups[ref.OtherID] != -1 {
					return
				}
				groups[ref.OtherID] = group
				stack.Add(ref.OtherID)
			})
		}
		group += 1
	}
	return groups
}

// Number of nodes per component.
func ComponentSizes(groups Array[int32]) List[int] {
	sizes := NewList[int](10)
	for _, group := range groups {
		for int(group) >= sizes.Length() {
			sizes.Add(0)
		}
		sizes[group] += 1
	}
	return sizes
}
