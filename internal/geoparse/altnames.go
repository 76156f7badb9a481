package geoparse

import (
	"strconv"
	"strings"
)

// altNameMinColumns is the minimum column count a well-formed
// alternateNamesV2.txt line must have (alt_id, geoname_id, iso, alt_name).
const altNameMinColumns = 4

const (
	colAltGeonameID = 1
	colAltName      = 3
)

// ParseAltNameLine parses one tab-separated alternateNamesV2.txt line,
// returning the (geonameID, altName) pair iff geonameID parses. The caller
// is responsible for checking geonameID against the set of admitted ids and
// for normalizing altName; this function only does structural TSV parsing.
//
// A row with an empty or unparseable geoname_id column is silently skipped,
// not treated as a structural error, consistent with the "drop malformed
// line" policy applied everywhere else in this package.
func ParseAltNameLine(line string) (geonameID uint32, altName string, ok bool) {
	cols := strings.Split(line, "\t")
	if len(cols) < altNameMinColumns {
		return 0, "", false
	}

	id, err := strconv.ParseUint(cols[colAltGeonameID], 10, 32)
	if err != nil {
		return 0, "", false
	}

	return uint32(id), cols[colAltName], true
}
