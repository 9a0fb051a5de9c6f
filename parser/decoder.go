package parser

import (
	. "github.com/ttpr0/poi-routing/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	IsPOI(tags Dict[string, string]) bool
	DecodePOI(tags Dict[string, string]) map[string]any
}

// Accepts every way usable on foot and tagged nodes describing a place of
// interest.
type POIDecoder struct {
}

var highway_types = Dict[string, bool]{"motorway": false, "motorway_link": false, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true,
	"pedestrian": true, "footway": true, "path": true, "steps": true, "cycleway": true}

// tag keys marking a point of interest, in order of precedence for the category
var poi_keys = []string{"amenity", "tourism", "historic", "leisure", "shop"}

func (self *POIDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	return highway_types.Get(tags.Get("highway"))
}

func (self *POIDecoder) IsPOI(tags Dict[string, string]) bool {
	for _, key := range poi_keys {
		if tags.ContainsKey(key) {
			return true
		}
	}
	return tags.ContainsKey("name") && !tags.ContainsKey("highway")
}

func (self *POIDecoder) DecodePOI(tags Dict[string, string]) map[string]any {
	attributes := make(map[string]any, 2)
	if name := tags.Get("name"); name != "" {
		attributes["name"] = name
	}
	for _, key := range poi_keys {
		if val := tags.Get(key); val != "" {
			attributes["category"] = val
			break
		}
	}
	return attributes
}
