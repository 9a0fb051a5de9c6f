package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
)

func TestExportGraph(t *testing.T) {
	manager := NewStaticRoutingManager(_TestRoutingGraph())
	file := filepath.Join(t.TempDir(), "graph.json")

	require.NoError(t, ExportGraph(manager, file))

	export, err := ReadJSONFromFile[GraphExport](file)
	require.NoError(t, err)
	require.Len(t, export.Nodes, 4)
	require.Len(t, export.Edges, 2)
	assert.Equal(t, geo.NewCoord(0, 0.001), export.Nodes[1].Coord)
	assert.Equal(t, "B", export.Nodes[1].Attributes["name"])
	assert.Nil(t, export.Nodes[2].Attributes)
	assert.Equal(t, int32(0), export.Edges[0].From)
	assert.Equal(t, int32(1), export.Edges[0].To)
	assert.InDelta(t, 111.19, export.Edges[0].Weight, 0.01)
	assert.Equal(t, 1, export.Stats.Roads)
}

func TestExportGraphInvalidPath(t *testing.T) {
	manager := NewStaticRoutingManager(_TestRoutingGraph())

	err := ExportGraph(manager, filepath.Join(t.TempDir(), "missing", "graph.json"))
	assert.Error(t, err)
}
