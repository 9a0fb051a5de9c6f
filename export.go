package main

import (
	"fmt"

	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// graph export
//**********************************************************

type GraphExport struct {
	Nodes []ExportNode     `json:"nodes"`
	Edges []ExportEdge     `json:"edges"`
	Stats graph.BuildStats `json:"stats"`
}

type ExportNode struct {
	ID         int32          `json:"id"`
	Coord      geo.Coord      `json:"coord"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type ExportEdge struct {
	From   int32   `json:"from"`
	To     int32   `json:"to"`
	Weight float64 `json:"weight"`
}

func NewGraphExport(g *RoutingGraph) GraphExport {
	nodes := NewList[ExportNode](g.Graph.NodeCount())
	for i := 0; i < g.Graph.NodeCount(); i++ {
		node := g.Graph.GetNode(int32(i))
		nodes.Add(ExportNode{
			ID:         int32(i),
			Coord:      node.Loc,
			Attributes: node.Attributes,
		})
	}
	edges := NewList[ExportEdge](g.Graph.EdgeCount())
	for i := 0; i < g.Graph.EdgeCount(); i++ {
		edge := g.Graph.GetEdge(int32(i))
		edges.Add(ExportEdge{
			From:   edge.NodeA,
			To:     edge.NodeB,
			Weight: edge.Weight,
		})
	}
	return GraphExport{
		Nodes: nodes,
		Edges: edges,
		Stats: g.Stats,
	}
}

// Writes nodes and edges of the current graph as json.
func ExportGraph(manager *RoutingManager, file string) error {
	export := NewGraphExport(manager.GetGraph())
	if err := WriteJSONToFile(export, file); err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}
	slog.Info(fmt.Sprintf("exported %v nodes and %v edges to %v", len(export.Nodes), len(export.Edges), file))
	return nil
}
