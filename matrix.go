package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// matrix request and response
//**********************************************************

type MatrixRequest struct {
	// [lon, lat] pairs
	Sources      [][]float64 `json:"sources"`
	Destinations [][]float64 `json:"destinations"`
}

type MatrixResponse struct {
	// meters, -1 if no path exists
	Distances Matrix[float64] `json:"distances"`
}

//**********************************************************
// matrix handler
//**********************************************************

func (self *RoutingService) HandleMatrixRequest(req MatrixRequest) Result {
	slog.Info("Run Matrix Request")

	if len(req.Sources) == 0 || len(req.Destinations) == 0 {
		return BadRequest("sources and destinations must not be empty")
	}
	max_size := self.options.MaxMatrixSize
	if len(req.Sources) > max_size || len(req.Destinations) > max_size {
		return BadRequest(fmt.Sprintf("at most %v sources and destinations allowed", max_size))
	}
	sources, err := _ToCoords(req.Sources, "sources")
	if err != nil {
		return BadRequest(err.Error())
	}
	destinations, err := _ToCoords(req.Destinations, "destinations")
	if err != nil {
		return BadRequest(err.Error())
	}

	matrix, err := self.manager.Matrix(context.Background(), sources, destinations, self.options.MatrixWorkers)
	if errors.Is(err, ErrInvalidCoordinate) {
		return BadRequest(err.Error())
	}
	if err != nil {
		slog.Error(fmt.Sprintf("Error in matrix calculation: %v", err))
		return InternalError("Internal server error")
	}

	resp := MatrixResponse{Distances: matrix}
	slog.Info("Matrix reponse build")
	return OK(resp)
}

func _ToCoords(values [][]float64, name string) (Array[geo.Coord], error) {
	coords := NewArray[geo.Coord](len(values))
	for i, value := range values {
		if len(value) != 2 {
			return nil, fmt.Errorf("%v[%v] must be [lon, lat]", name, i)
		}
		coords[i] = geo.NewCoord(value[0], value[1])
	}
	return coords, nil
}
