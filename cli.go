package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ttpr0/poi-routing/routing"
)

var ErrInvalidIndex = errors.New("invalid index selected")

// Computes the shortest path between two node indices and prints it with
// its length and the coordinate of every node.
func RunQuery(w io.Writer, manager *RoutingManager, from, to int) error {
	g := manager.GetGraph().Graph
	fmt.Fprintf(w, "Graph constructed with %v nodes and %v edges.\n", g.NodeCount(), g.EdgeCount())
	if g.NodeCount() == 0 {
		return ErrEmptyGraph
	}
	if !g.IsNode(int32(from)) || !g.IsNode(int32(to)) || from != int(int32(from)) || to != int(int32(to)) {
		return fmt.Errorf("%w: valid range is 0 to %v", ErrInvalidIndex, g.NodeCount()-1)
	}

	path, err := manager.RouteNodes(int32(from), int32(to))
	if err != nil {
		return err
	}
	if !path.HasValue() {
		fmt.Fprintln(w, "No path found.")
		return nil
	}
	fmt.Fprintf(w, "\nShortest path (by index): %v\n", _FormatPath(path.Value))
	fmt.Fprintf(w, "Total distance (meters): %.2f\n\n", path.Value.Cost())
	fmt.Fprintln(w, "Path with coordinates:")
	for _, node := range path.Value.Nodes() {
		fmt.Fprintf(w, "Point %v: %v\n", node, g.GetNodeGeom(node))
	}
	return nil
}

func _FormatPath(path routing.Path) string {
	ids := make([]string, 0, path.Length())
	for _, node := range path.Nodes() {
		ids = append(ids, fmt.Sprint(node))
	}
	return "[" + strings.Join(ids, ", ") + "]"
}
