package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ttpr0/poi-routing/algorithm"
	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	"github.com/ttpr0/poi-routing/parser"
	"github.com/ttpr0/poi-routing/routing"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoPathFound       = errors.New("no path found")
	ErrEmptyGraph        = errors.New("graph has no nodes")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

//**********************************************************
// routing graph
//**********************************************************

// Immutable snapshot of a built graph together with its source points.
type RoutingGraph struct {
	Graph   *graph.Graph
	Points  Array[parser.PointRecord]
	Stats   graph.BuildStats
	// records read and skipped while loading the source files
	SourceStats parser.ParseStats
	BuiltAt     time.Time
	// number of connected components and size of the largest one
	Components       int
	LargestComponent int
}

func BuildRoutingGraph(points Array[parser.PointRecord], roads Array[parser.RoadRecord], options graph.BuildOptions) *RoutingGraph {
	nodes := NewArray[graph.Node](points.Length())
	for i, p := range points {
		nodes[i] = graph.Node{
			Loc:        p.Loc,
			Attributes: p.Attributes,
		}
	}
	lines := NewArray[geo.CoordArray](roads.Length())
	for i, r := range roads {
		lines[i] = r.Coords
	}
	g, stats := graph.BuildGraph(nodes, lines, options)
	sizes := algorithm.ComponentSizes(algorithm.ConnectedComponents(g))
	largest := 0
	for _, size := range sizes {
		largest = max(largest, size)
	}
	slog.Info(fmt.Sprintf("graph has %v connected components, largest with %v nodes", sizes.Length(), largest))
	return &RoutingGraph{
		Graph:            g,
		Points:           points,
		Stats:            stats,
		BuiltAt:          time.Now(),
		Components:       sizes.Length(),
		LargestComponent: largest,
	}
}

//**********************************************************
// routing manager
//**********************************************************

func NewRoutingManager(ctx context.Context, source parser.SourceOptions, options graph.BuildOptions) (*RoutingManager, error) {
	manager := &RoutingManager{
		source:  source,
		options: options,
	}
	if err := manager.Reload(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

// Creates a manager serving an already built graph. Reload is not available.
func NewStaticRoutingManager(g *RoutingGraph) *RoutingManager {
	manager := &RoutingManager{}
	manager.current.Store(g)
	return manager
}

// Holds the current routing graph. Queries work on the snapshot they
// obtained, a reload builds a new graph and swaps it in atomically.
type RoutingManager struct {
	source    parser.SourceOptions
	options   graph.BuildOptions
	current   atomic.Pointer[RoutingGraph]
	reload_mu sync.Mutex
	listeners []func(*RoutingGraph)
}

// Registers a callback invoked after every successful (re)build.
func (self *RoutingManager) OnReload(listener func(*RoutingGraph)) {
	self.reload_mu.Lock()
	defer self.reload_mu.Unlock()
	self.listeners = append(self.listeners, listener)
	if g := self.current.Load(); g != nil {
		listener(g)
	}
}

// Loads the source data and rebuilds the graph. The previous graph stays
// active if loading fails.
func (self *RoutingManager) Reload(ctx context.Context) error {
	self.reload_mu.Lock()
	defer self.reload_mu.Unlock()

	if len(self.source.Files()) == 0 {
		return errors.New("no source configured")
	}
	start := time.Now()
	points, roads, stats, err := parser.LoadSource(ctx, self.source)
	if err != nil {
		return err
	}
	g := BuildRoutingGraph(points, roads, self.options)
	g.SourceStats = stats
	self.current.Store(g)
	slog.Info(fmt.Sprintf("routing graph ready after %v", time.Since(start)))
	for _, listener := range self.listeners {
		listener(g)
	}
	return nil
}

func (self *RoutingManager) GetGraph() *RoutingGraph {
	return self.current.Load()
}

func (self *RoutingManager) GetSourceFiles() []string {
	return self.source.Files()
}

//**********************************************************
// queries
//**********************************************************

type RouteResult struct {
	StartNode int32
	EndNode   int32
	Nodes     Array[int32]
	Coords    geo.CoordArray
	Distance  float64
	// attributes of each path node
	Attributes Array[map[string]any]
}

// Snaps start and end to their closest nodes and computes the shortest path
// between them. Returns ErrNoPathFound if the nodes are not connected.
func (self *RoutingManager) Route(start, end geo.Coord) (RouteResult, error) {
	snapshot := self.GetGraph()
	g := snapshot.Graph
	start_node, err := SnapCoord(g, start)
	if err != nil {
		return RouteResult{}, err
	}
	end_node, err := SnapCoord(g, end)
	if err != nil {
		return RouteResult{}, err
	}
	slog.Debug(fmt.Sprintf("Start Caluclating shortest path between %v and %v", start_node, end_node))

	path, err := routing.ShortestPath(g, start_node, end_node)
	if err != nil {
		return RouteResult{}, err
	}
	if !path.HasValue() {
		return RouteResult{}, fmt.Errorf("%w between %v and %v", ErrNoPathFound, start_node, end_node)
	}
	nodes := path.Value.Nodes()
	attributes := NewArray[map[string]any](nodes.Length())
	for i, node := range nodes {
		attributes[i] = g.GetNode(node).Attributes
	}
	return RouteResult{
		StartNode:  start_node,
		EndNode:    end_node,
		Nodes:      nodes,
		Coords:     path.Value.GetGeometry(g),
		Attributes: attributes,
		Distance:   path.Value.Cost(),
	}, nil
}

// Shortest path between two node ids, bypassing snapping.
func (self *RoutingManager) RouteNodes(start, end int32) (Optional[routing.Path], error) {
	return routing.ShortestPath(self.GetGraph().Graph, start, end)
}

type NearestResult struct {
	Node       int32
	Loc        geo.Coord
	Attributes map[string]any
	Distance   float64
}

func (self *RoutingManager) Nearest(coord geo.Coord) (NearestResult, error) {
	g := self.GetGraph().Graph
	node, err := SnapCoord(g, coord)
	if err != nil {
		return NearestResult{}, err
	}
	n := g.GetNode(node)
	return NearestResult{
		Node:       node,
		Loc:        n.Loc,
		Attributes: n.Attributes,
		Distance:   geo.HaversineDistance(coord, n.Loc),
	}, nil
}

// Nodes reachable from the node closest to coord within max_range meters of
// network distance, ordered by distance.
func (self *RoutingManager) Reachable(coord geo.Coord, max_range float64) (Array[NearestResult], error) {
	g := self.GetGraph().Graph
	node, err := SnapCoord(g, coord)
	if err != nil {
		return nil, err
	}
	start := Array[Tuple[int32, float64]]{MakeTuple(node, 0.0)}
	dists := algorithm.CalcRangeDijkstra(g, start, max_range)
	results := NewList[NearestResult](dists.Length())
	for id, dist := range dists {
		n := g.GetNode(id)
		results.Add(NearestResult{
			Node:       id,
			Loc:        n.Loc,
			Attributes: n.Attributes,
			Distance:   dist,
		})
	}
	slices.SortFunc(results, func(a, b NearestResult) int {
		if a.Distance != b.Distance {
			return cmp.Compare(a.Distance, b.Distance)
		}
		return cmp.Compare(a.Node, b.Node)
	})
	return Array[NearestResult](results), nil
}

// Distances in meters from every source to every destination, -1 where no
// path exists. Sources are processed by up to workers goroutines.
func (self *RoutingManager) Matrix(ctx context.Context, sources, destinations []geo.Coord, workers int) (Matrix[float64], error) {
	g := self.GetGraph().Graph
	source_nodes, err := MapCoordsToNodes(g, sources)
	if err != nil {
		return Matrix[float64]{}, fmt.Errorf("sources: %w", err)
	}
	target_nodes, err := MapCoordsToNodes(g, destinations)
	if err != nil {
		return Matrix[float64]{}, fmt.Errorf("destinations: %w", err)
	}

	matrix := NewMatrix[float64](len(sources), len(destinations))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(workers, 1))
	for s, s_node := range source_nodes {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			solver := routing.NewShortestPathTree(g)
			solver.CalcShortestPathTree(s_node)
			// every goroutine writes its own row
			for t, t_node := range target_nodes {
				dist := solver.GetDistance(t_node)
				if math.IsInf(dist, 1) {
					dist = -1
				}
				matrix.Set(s, t, dist)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Matrix[float64]{}, err
	}
	return matrix, nil
}
