package parser

import (
	"strconv"

	"github.com/ttpr0/poi-routing/geo"
	. "github.com/ttpr0/poi-routing/util"
)

//*******************************************
// csv parser
//*******************************************

type CSVPoint struct {
	Lon      string `csv:"lon"`
	Lat      string `csv:"lat"`
	Name     string `csv:"name"`
	Category string `csv:"category"`
}

// Reads points from a csv file with lon, lat and optional name and category
// columns. Rows without parsable coordinates are skipped.
func ParseCSVPoints(file string, delimiter rune) (Array[PointRecord], ParseStats, error) {
	stats := ParseStats{}
	rows, err := ReadCSVFromFile[CSVPoint](file, delimiter)
	if err != nil {
		return nil, stats, err
	}
	points := NewList[PointRecord](100)
	for row := range rows {
		lon, err_lon := strconv.ParseFloat(row.Lon, 64)
		lat, err_lat := strconv.ParseFloat(row.Lat, 64)
		loc := geo.NewCoord(lon, lat)
		if err_lon != nil || err_lat != nil || !loc.IsValid() {
			stats.Skipped += 1
			continue
		}
		attributes := make(map[string]any, 2)
		if row.Name != "" {
			attributes["name"] = row.Name
		}
		if row.Category != "" {
			attributes["category"] = row.Category
		}
		points.Add(PointRecord{Loc: loc, Attributes: attributes})
		stats.Read += 1
	}
	return Array[PointRecord](points), stats, nil
}
