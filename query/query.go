// Package query implements exact-key lookup against an opened geodb
// database: normalize, FST lookup, postings decode, record materialization.
package query

import (
	"context"
	"fmt"

	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/geo"
	"github.com/geodb-project/geodb/internal/errs"
	"github.com/geodb-project/geodb/internal/normalize"
	"github.com/geodb-project/geodb/internal/varint"
)

// Candidate is one matched place.
type Candidate struct {
	GeonameID    uint32  `json:"geoname_id"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	Admin1       string  `json:"admin1"`
	Admin2       string  `json:"admin2"`
	Lat          float32 `json:"lat"`
	Lon          float32 `json:"lon"`
	FeatureClass byte    `json:"feature_class"`
	FeatureCode  string  `json:"feature_code"`
	Population   uint32  `json:"population"`
}

// Result is the outcome of a Lookup.
type Result struct {
	Key        string      `json:"key"`
	Count      int         `json:"count"`
	Candidates []Candidate `json:"candidates"`
}

// Lookup normalizes key, resolves it against d's FST, decodes the matching
// posting list, and materializes up to limit candidate records in
// ascending-id order. limit == 0 means no cap.
//
// A key with no FST entry is not an error: Lookup returns an empty Result.
// ctx is honored only for early cancellation between per-id record reads;
// decoding itself never blocks.
func Lookup(ctx context.Context, d *db.DB, key string, limit int, opts ...Option) (Result, error) {
	cfg := defaultConfig(limit)
	for _, opt := range opts {
		opt(cfg)
	}
	limit = cfg.limit

	norm, ok := normalize.Key(key)
	if !ok {
		return Result{Key: key}, nil
	}

	postingsOffset, exists, err := d.FSTGet([]byte(norm))
	if err != nil {
		return Result{}, fmt.Errorf("fst lookup %q: %w: %w", norm, errs.ErrCorrupt, err)
	}
	if !exists {
		return Result{Key: key}, nil
	}

	ids, err := decodePostingsAt(d.Postings, postingsOffset)
	if err != nil {
		return Result{}, err
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	candidates := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		c, ok, err := materialize(d, id)
		if err != nil {
			return Result{}, err
		}
		if ok {
			candidates = append(candidates, c)
		}
	}

	return Result{Key: key, Count: len(candidates), Candidates: candidates}, nil
}

// decodePostingsAt reads a varint length followed by that many bytes of
// delta+varint-encoded ids from d.Postings starting at off.
func decodePostingsAt(postings []byte, off uint64) ([]uint32, error) {
	if off > uint64(len(postings)) {
		return nil, fmt.Errorf("postings offset %d out of range: %w", off, errs.ErrCorrupt)
	}
	buf := postings[off:]

	n, consumed, err := varint.ReadVarUint32(buf)
	if err != nil {
		return nil, fmt.Errorf("read postings length at offset %d: %w: %w", off, errs.ErrCorrupt, err)
	}
	buf = buf[consumed:]
	if uint64(len(buf)) < uint64(n) {
		return nil, fmt.Errorf("postings record at offset %d truncated: %w", off, errs.ErrCorrupt)
	}

	return varint.DecodeDeltaVarints(buf[:n]), nil
}

// materialize decodes the record stored for id, returning ok==false if id
// is absent from the offsets table (an index/data mismatch that should
// never occur against a correctly built database, but is not fatal to the
// rest of the query).
func materialize(d *db.DB, id uint32) (Candidate, bool, error) {
	off, ok := d.RecordOffset(id)
	if !ok {
		return Candidate{}, false, nil
	}
	if off > uint64(len(d.Records)) {
		return Candidate{}, false, fmt.Errorf("record offset %d out of range: %w", off, errs.ErrCorrupt)
	}

	r, _, err := geo.DecodeRecord(d.Records[off:])
	if err != nil {
		return Candidate{}, false, fmt.Errorf("decode record id %d: %w", id, err)
	}

	return Candidate{
		GeonameID:    r.ID,
		Name:         r.Name,
		Country:      r.Country,
		Admin1:       r.Admin1,
		Admin2:       r.Admin2,
		Lat:          r.Lat,
		Lon:          r.Lon,
		FeatureClass: r.FeatClass,
		FeatureCode:  r.FeatCode,
		Population:   r.Population,
	}, true, nil
}
