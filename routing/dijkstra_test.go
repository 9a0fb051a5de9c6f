package routing

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	. "github.com/ttpr0/poi-routing/util"
)

func _BuildTestGraph(t *testing.T, node_count int, edges ...graph.Edge) *graph.Graph {
	nodes := NewArray[graph.Node](node_count)
	for i := range nodes {
		nodes[i] = graph.Node{Loc: geo.Coord{float64(i) * 0.001, 0}}
	}
	g, err := graph.NewGraph(nodes, Array[graph.Edge](edges))
	require.NoError(t, err)
	return g
}

// Bellman-Ford reference distances.
func _BellmanFord(g graph.IGraph, start int32) []float64 {
	dist := make([]float64, g.NodeCount())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[start] = 0
	for i := 0; i < g.NodeCount(); i++ {
		changed := false
		for e := 0; e < g.EdgeCount(); e++ {
			edge := g.GetEdge(int32(e))
			if dist[edge.NodeA]+edge.Weight < dist[edge.NodeB] {
				dist[edge.NodeB] = dist[edge.NodeA] + edge.Weight
				changed = true
			}
			if dist[edge.NodeB]+edge.Weight < dist[edge.NodeA] {
				dist[edge.NodeA] = dist[edge.NodeB] + edge.Weight
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

func _RandomGraph(t *testing.T, rng *rand.Rand, node_count, edge_count int) *graph.Graph {
	edges := NewList[graph.Edge](edge_count)
	seen := NewDict[Tuple[int32, int32], bool](edge_count)
	for edges.Length() < edge_count {
		a := int32(rng.Intn(node_count))
		b := int32(rng.Intn(node_count))
		key := MakeTuple(min(a, b), max(a, b))
		if a == b || seen.ContainsKey(key) {
			continue
		}
		seen.Set(key, true)
		edges.Add(graph.Edge{NodeA: a, NodeB: b, Weight: float64(rng.Intn(100))})
	}
	return _BuildTestGraph(t, node_count, edges...)
}

func TestDirectEdgeBeatsTwoHops(t *testing.T) {
	// A=0, B=1, C=2
	g := _BuildTestGraph(t, 3,
		graph.Edge{NodeA: 0, NodeB: 1, Weight: 10},
		graph.Edge{NodeA: 1, NodeB: 2, Weight: 10},
		graph.Edge{NodeA: 0, NodeB: 2, Weight: 5},
	)

	path, err := ShortestPath(g, 0, 2)
	require.NoError(t, err)
	require.True(t, path.HasValue())
	assert.Equal(t, Array[int32]{0, 2}, path.Value.Nodes())
	assert.Equal(t, 5.0, path.Value.Cost())
}

func TestTwoHopsBeatDirectEdge(t *testing.T) {
	g := _BuildTestGraph(t, 3,
		graph.Edge{NodeA: 0, NodeB: 1, Weight: 1},
		graph.Edge{NodeA: 1, NodeB: 2, Weight: 1},
		graph.Edge{NodeA: 0, NodeB: 2, Weight: 5},
	)

	path, err := ShortestPath(g, 2, 0)
	require.NoError(t, err)
	require.True(t, path.HasValue())
	assert.Equal(t, Array[int32]{2, 1, 0}, path.Value.Nodes())
	assert.Equal(t, 2.0, path.Value.Cost())
}

func TestSameStartAndEnd(t *testing.T) {
	// node 3 is isolated
	g := _BuildTestGraph(t, 4,
		graph.Edge{NodeA: 0, NodeB: 1, Weight: 1},
		graph.Edge{NodeA: 1, NodeB: 2, Weight: 1},
	)

	for _, node := range []int32{0, 1, 3} {
		path, err := ShortestPath(g, node, node)
		require.NoError(t, err)
		require.True(t, path.HasValue())
		assert.Equal(t, Array[int32]{node}, path.Value.Nodes())
		assert.Equal(t, 0.0, path.Value.Cost())
	}
}

func TestDisconnectedClusters(t *testing.T) {
	g := _BuildTestGraph(t, 4,
		graph.Edge{NodeA: 0, NodeB: 1, Weight: 1},
		graph.Edge{NodeA: 2, NodeB: 3, Weight: 1},
	)

	path, err := ShortestPath(g, 0, 3)
	require.NoError(t, err)
	assert.False(t, path.HasValue())
}

func TestNodeNotInGraph(t *testing.T) {
	g := _BuildTestGraph(t, 2, graph.Edge{NodeA: 0, NodeB: 1, Weight: 1})

	_, err := ShortestPath(g, 0, 2)
	assert.ErrorIs(t, err, ErrNodeNotInGraph)
	_, err = ShortestPath(g, -1, 1)
	assert.ErrorIs(t, err, ErrNodeNotInGraph)
}

func TestPathGeometry(t *testing.T) {
	g := _BuildTestGraph(t, 3,
		graph.Edge{NodeA: 0, NodeB: 1, Weight: 1},
		graph.Edge{NodeA: 1, NodeB: 2, Weight: 1},
	)

	path, err := ShortestPath(g, 0, 2)
	require.NoError(t, err)
	require.True(t, path.HasValue())
	assert.Equal(t, geo.CoordArray{{0, 0}, {0.001, 0}, {0.002, 0}}, path.Value.GetGeometry(g))
	assert.Equal(t, int32(0), path.Value.Start())
	assert.Equal(t, int32(2), path.Value.End())
}

func TestMatchesBellmanFord(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 20; round++ {
		g := _RandomGraph(t, rng, 40, 80)
		start := int32(rng.Intn(40))
		reference := _BellmanFord(g, start)

		for end := int32(0); end < 40; end++ {
			path, err := ShortestPath(g, start, end)
			require.NoError(t, err)
			if math.IsInf(reference[end], 1) {
				assert.False(t, path.HasValue())
				continue
			}
			require.True(t, path.HasValue())
			assert.InDelta(t, reference[end], path.Value.Cost(), 1e-9)

			// path is connected by edges and sums up to its cost
			nodes := path.Value.Nodes()
			assert.Equal(t, start, nodes[0])
			assert.Equal(t, end, nodes[len(nodes)-1])
			sum := 0.0
			for i := 1; i < len(nodes); i++ {
				edge, ok := g.FindEdge(nodes[i-1], nodes[i])
				require.True(t, ok)
				sum += edge.Weight
			}
			assert.InDelta(t, path.Value.Cost(), sum, 1e-9)
		}

		dists, err := ShortestDistances(g, start)
		require.NoError(t, err)
		for i, d := range dists {
			assert.Equal(t, reference[i], d)
		}
	}
}

func TestIdempotentAndConcurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := _RandomGraph(t, rng, 200, 600)

	first, err := ShortestPath(g, 0, 199)
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				path, err := ShortestPath(g, 0, 199)
				assert.NoError(t, err)
				assert.Equal(t, first.HasValue(), path.HasValue())
				if path.HasValue() {
					assert.Equal(t, first.Value.Cost(), path.Value.Cost())
				}
			}
		}()
	}
	wg.Wait()
}
