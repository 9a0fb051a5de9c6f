package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//**********************************************************
// metrics
//**********************************************************

// Prometheus metrics of the routing service. Every instance owns its own
// registry so that several services (e.g. in tests) do not collide.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Queries         *prometheus.CounterVec
	Reloads         prometheus.Counter
	GraphNodes      prometheus.Gauge
	GraphEdges      prometheus.Gauge
	SkippedRoads    prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	request_duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	queries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_queries_total",
			Help:      "Total number of shortest path queries by result",
		},
		[]string{"result"},
	)
	reloads := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_reloads_total",
			Help:      "Total number of graph builds",
		},
	)
	graph_nodes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the current graph",
		},
	)
	graph_edges := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the current graph",
		},
	)
	skipped_roads := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_unmatched_pairs",
			Help:      "Consecutive road vertices without a point in snapping distance during the last build",
		},
	)

	registry.MustRegister(requests, request_duration, queries, reloads, graph_nodes, graph_edges, skipped_roads)

	return &Metrics{
		registry:        registry,
		Requests:        requests,
		RequestDuration: request_duration,
		Queries:         queries,
		Reloads:         reloads,
		GraphNodes:      graph_nodes,
		GraphEdges:      graph_edges,
		SkippedRoads:    skipped_roads,
	}
}

func (self *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(self.registry, promhttp.HandlerOpts{})
}

func (self *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	self.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	self.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (self *Metrics) ObserveGraph(g *RoutingGraph) {
	self.Reloads.Inc()
	self.GraphNodes.Set(float64(g.Graph.NodeCount()))
	self.GraphEdges.Set(float64(g.Graph.EdgeCount()))
	self.SkippedRoads.Set(float64(g.Stats.UnmatchedPairs))
}
