// Package geoparse projects raw GeoNames TSV lines into geo.Record values and
// alt-name (key, id) pairs.
//
// Every function here follows the same contract: a malformed line is dropped
// silently (returned as ok==false, never as an error) since the upstream
// dumps contain occasional garbage and a single bad row must never abort a
// multi-hundred-million-line build.
package geoparse

import (
	"strconv"
	"strings"

	"github.com/geodb-project/geodb/geo"
)

// AllCountriesMinColumns is the minimum column count a well-formed
// allCountries.txt line must have.
const AllCountriesMinColumns = 15

// column indices into an allCountries.txt line, 0-based.
const (
	colID         = 0
	colName       = 1
	colAsciiName  = 2
	colLat        = 4
	colLon        = 5
	colFeatClass  = 6
	colFeatCode   = 7
	colCountry    = 8
	colAdmin1     = 10
	colAdmin2     = 11
	colPopulation = 14
)

// ParseAllCountriesLine parses one tab-separated allCountries.txt line into
// a geo.Record, admitting it only if id/lat/lon parse and population >=
// minPop.
//
// A population column that fails to parse defaults to 0 (still admitted,
// then excluded by the minPop check if minPop > 0, matching the source
// dump's behavior of occasionally shipping a blank population field).
func ParseAllCountriesLine(line string, minPop uint32) (geo.Record, bool) {
	cols := strings.Split(line, "\t")
	if len(cols) < AllCountriesMinColumns {
		return geo.Record{}, false
	}

	id, err := strconv.ParseUint(cols[colID], 10, 32)
	if err != nil {
		return geo.Record{}, false
	}
	lat, err := strconv.ParseFloat(cols[colLat], 32)
	if err != nil {
		return geo.Record{}, false
	}
	lon, err := strconv.ParseFloat(cols[colLon], 32)
	if err != nil {
		return geo.Record{}, false
	}

	population, err := strconv.ParseUint(cols[colPopulation], 10, 32)
	if err != nil {
		population = 0
	}
	if uint32(population) < minPop {
		return geo.Record{}, false
	}

	featClass := geo.UnknownFeatureClass
	if len(cols[colFeatClass]) > 0 {
		featClass = cols[colFeatClass][0]
	}

	return geo.Record{
		ID:         uint32(id),
		Name:       cols[colName],
		AsciiName:  cols[colAsciiName],
		Country:    cols[colCountry],
		Admin1:     cols[colAdmin1],
		Admin2:     cols[colAdmin2],
		FeatCode:   cols[colFeatCode],
		Lat:        float32(lat),
		Lon:        float32(lon),
		Population: uint32(population),
		FeatClass:  featClass,
	}, true
}
