package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gorilla/mux"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	"github.com/ttpr0/poi-routing/parser"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// routing requests and responses
//**********************************************************

type RoutingRequest struct {
	// [lon, lat], defaults to the configured start
	StartCoord []float64 `json:"start_coord"`
	EndCoord   []float64 `json:"end_coord"`
}

type NearestRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type NearestResponse struct {
	Node       int32          `json:"node"`
	Coord      geo.Coord      `json:"coord"`
	Attributes map[string]any `json:"attributes"`
	Distance   float64        `json:"distance"`
}

type ReachableRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	// meters
	MaxRange float64 `json:"max_range"`
}

type HealthResponse struct {
	Status           string            `json:"status"`
	Nodes            int               `json:"nodes"`
	Edges            int               `json:"edges"`
	Components       int               `json:"components"`
	LargestComponent int               `json:"largest_component"`
	BuiltAt          time.Time         `json:"built_at"`
	Stats            graph.BuildStats  `json:"stats"`
	Source           parser.ParseStats `json:"source"`
}

// Builds the route FeatureCollection: the path line followed by start, end
// and waypoint markers.
func NewRoutingResponse(res RouteResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := geojson.NewFeature(res.Coords.ToLineString())
	line.Properties["type"] = "path"
	line.Properties["length"] = math.Round(res.Distance*100) / 100
	line.Properties["units"] = "meters"
	fc.Append(line)

	last := len(res.Coords) - 1
	start := geojson.NewFeature(res.Coords[0].ToPoint())
	start.Properties["type"] = "start"
	start.Properties["name"] = _GetName(res.Attributes[0], "Start Point")
	fc.Append(start)

	end := geojson.NewFeature(res.Coords[last].ToPoint())
	end.Properties["type"] = "end"
	end.Properties["name"] = _GetName(res.Attributes[last], "Destination")
	fc.Append(end)

	for i := 1; i < last; i++ {
		waypoint := geojson.NewFeature(res.Coords[i].ToPoint())
		waypoint.Properties["type"] = "waypoint"
		waypoint.Properties["name"] = _GetName(res.Attributes[i], fmt.Sprintf("Point %v", i))
		waypoint.Properties["order"] = i
		fc.Append(waypoint)
	}
	return fc
}

// Encodes reachable nodes as Point features carrying their attributes, node
// id and network distance.
func NewReachableResponse(results Array[NearestResult]) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, res := range results {
		feature := geojson.NewFeature(res.Loc.ToPoint())
		for key, val := range res.Attributes {
			feature.Properties[key] = val
		}
		feature.Properties["node"] = res.Node
		feature.Properties["distance"] = math.Round(res.Distance*100) / 100
		fc.Append(feature)
	}
	return fc
}

func _GetName(attributes map[string]any, fallback string) any {
	if name, ok := attributes["name"]; ok && name != nil {
		return name
	}
	return fallback
}

//**********************************************************
// routing service
//**********************************************************

type RoutingService struct {
	manager *RoutingManager
	options RoutingOptions
	metrics *Metrics
}

func NewRoutingService(manager *RoutingManager, options RoutingOptions, metrics *Metrics) *RoutingService {
	return &RoutingService{
		manager: manager,
		options: options,
		metrics: metrics,
	}
}

func (self *RoutingService) RegisterRoutes(app *mux.Router) {
	MapPost(app, "/route", self.HandleRoutingRequest)
	MapPost(app, "/matrix", self.HandleMatrixRequest)
	MapGet(app, "/points", self.HandlePointsRequest)
	MapGet(app, "/nearest", self.HandleNearestRequest)
	MapGet(app, "/reachable", self.HandleReachableRequest)
	MapGet(app, "/health", self.HandleHealthRequest)
	app.Handle("/metrics", self.metrics.Handler()).Methods("GET")
}

//**********************************************************
// routing handlers
//**********************************************************

func (self *RoutingService) HandleRoutingRequest(req RoutingRequest) Result {
	if req.EndCoord == nil {
		return BadRequest("Missing end_coord parameter")
	}
	if len(req.EndCoord) != 2 {
		return BadRequest("end_coord must be [lon, lat]")
	}
	end := geo.NewCoord(req.EndCoord[0], req.EndCoord[1])
	start := self.options.GetDefaultStart()
	if req.StartCoord != nil {
		if len(req.StartCoord) != 2 {
			return BadRequest("start_coord must be [lon, lat]")
		}
		start = geo.NewCoord(req.StartCoord[0], req.StartCoord[1])
	}

	res, err := self.manager.Route(start, end)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoPathFound):
		self.metrics.Queries.WithLabelValues("no_path").Inc()
		slog.Debug(err.Error())
		return NotFound("No path found between the selected points")
	case errors.Is(err, ErrInvalidCoordinate):
		self.metrics.Queries.WithLabelValues("invalid").Inc()
		return BadRequest(err.Error())
	default:
		self.metrics.Queries.WithLabelValues("error").Inc()
		slog.Error(fmt.Sprintf("Error in route calculation: %v", err))
		return InternalError("Internal server error")
	}
	self.metrics.Queries.WithLabelValues("found").Inc()
	slog.Debug(fmt.Sprintf("shortest path found with %v nodes and length %.2f", res.Nodes.Length(), res.Distance))
	return OK(NewRoutingResponse(res))
}

func (self *RoutingService) HandlePointsRequest(req none) Result {
	snapshot := self.manager.GetGraph()
	return OK(parser.PointsToGeoJSON(snapshot.Points))
}

func (self *RoutingService) HandleNearestRequest(req NearestRequest) Result {
	res, err := self.manager.Nearest(geo.NewCoord(req.Lon, req.Lat))
	if errors.Is(err, ErrInvalidCoordinate) {
		return BadRequest(err.Error())
	}
	if err != nil {
		return NotFound(err.Error())
	}
	return OK(NearestResponse{
		Node:       res.Node,
		Coord:      res.Loc,
		Attributes: res.Attributes,
		Distance:   res.Distance,
	})
}

func (self *RoutingService) HandleReachableRequest(req ReachableRequest) Result {
	if !(req.MaxRange > 0) || math.IsInf(req.MaxRange, 0) {
		return BadRequest("max_range must be a positive number")
	}
	results, err := self.manager.Reachable(geo.NewCoord(req.Lon, req.Lat), req.MaxRange)
	if errors.Is(err, ErrInvalidCoordinate) {
		return BadRequest(err.Error())
	}
	if err != nil {
		return NotFound(err.Error())
	}
	return OK(NewReachableResponse(results))
}

func (self *RoutingService) HandleHealthRequest(req none) Result {
	snapshot := self.manager.GetGraph()
	return OK(HealthResponse{
		Status:           "ok",
		Nodes:            snapshot.Graph.NodeCount(),
		Edges:            snapshot.Graph.EdgeCount(),
		Components:       snapshot.Components,
		LargestComponent: snapshot.LargestComponent,
		BuiltAt:          snapshot.BuiltAt,
		Stats:            snapshot.Stats,
		Source:           snapshot.SourceStats,
	})
}
