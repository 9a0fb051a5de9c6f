package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

//*******************************************
// coordinates
//*******************************************

// Mean earth radius in meter.
const EARTH_RADIUS = 6371000.0

// Coordinate as (longitude, latitude) in decimal degrees.
type Coord [2]float64

func NewCoord(lon, lat float64) Coord {
	return Coord{lon, lat}
}

func (self Coord) Lon() float64 {
	return self[0]
}
func (self Coord) Lat() float64 {
	return self[1]
}

// Reports whether the coordinate is finite and inside the WGS84 bounds.
func (self Coord) IsValid() bool {
	lon, lat := self[0], self[1]
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

func (self Coord) ToPoint() orb.Point {
	return orb.Point{self[0], self[1]}
}

func (self Coord) String() string {
	return fmt.Sprintf("(%v, %v)", self[0], self[1])
}

func FromPoint(point orb.Point) Coord {
	return Coord{point[0], point[1]}
}

type CoordArray []Coord

func (self CoordArray) ToLineString() orb.LineString {
	line := make(orb.LineString, len(self))
	for i, c := range self {
		line[i] = c.ToPoint()
	}
	return line
}

func FromLineString(line orb.LineString) CoordArray {
	coords := make(CoordArray, len(line))
	for i, p := range line {
		coords[i] = FromPoint(p)
	}
	return coords
}

//*******************************************
// distance
//*******************************************

// Great-circle distance in meters between a and b using the haversine formula.
func HaversineDistance(a, b Coord) float64 {
	if a == b {
		return 0
	}
	phi1 := a.Lat() * math.Pi / 180
	phi2 := b.Lat() * math.Pi / 180
	delta_phi := (b.Lat() - a.Lat()) * math.Pi / 180
	delta_lambda := (b.Lon() - a.Lon()) * math.Pi / 180

	sin_phi := math.Sin(delta_phi / 2)
	sin_lambda := math.Sin(delta_lambda / 2)
	h := sin_phi*sin_phi + math.Cos(phi1)*math.Cos(phi2)*sin_lambda*sin_lambda
	// rounding can push h slightly outside [0,1] for antipodal or invalid input
	h = math.Max(0, math.Min(1, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	d := EARTH_RADIUS * c
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// Total length of the line in meters.
func LineLength(line CoordArray) float64 {
	length := 0.0
	for i := 1; i < len(line); i++ {
		length += HaversineDistance(line[i-1], line[i])
	}
	return length
}
