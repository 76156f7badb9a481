// Package geo defines the GeoRecord data model and its on-disk codec.
//
// A GeoRecord is one place from the GeoNames allCountries dump. Records are
// built in memory during the build pipeline, serialized into the database's
// records blob, and reconstructed transiently per query — the wire format
// never round-trips AsciiName, which exists only to seed extra index keys.
package geo

// UnknownFeatureClass is stored when the source row's feat_class column is
// empty.
const UnknownFeatureClass byte = '?'

// Record is one geographic place.
type Record struct {
	ID         uint32
	Name       string
	AsciiName  string // build-time only; never persisted
	Country    string
	Admin1     string
	Admin2     string
	FeatCode   string
	Lat        float32
	Lon        float32
	Population uint32
	FeatClass  byte
}
