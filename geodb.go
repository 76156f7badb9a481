// Package geodb provides a compact, read-optimized geographic-name lookup
// database built from the public GeoNames dumps (allCountries.txt and
// alternateNamesV2.txt).
//
// # Core Features
//
//   - Finite-state-transducer key index for exact case-folded name lookup
//   - Delta+varint-encoded posting lists and a binary-searchable offsets table
//   - Memory-mapped read path: the file is copied into memory once at Open
//   - Bounded data-parallel build pipeline over chunked TSV input
//
// # Basic Usage
//
// Building a database from the two archive members:
//
//	err := geodb.Build(ctx, "allCountries.zip", "alternateNames.zip", "world.geodb", 0)
//
// Opening and querying it:
//
//	d, _ := geodb.Open("world.geodb")
//	defer d.Close()
//	res, _ := geodb.Lookup(ctx, d, "paris", 0)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the build, db,
// and query packages, simplifying the most common use cases. For advanced
// configuration (worker counts, chunk sizes, progress sinks, result-limit
// defaults), use those packages directly via their own functional options.
package geodb

import (
	"context"

	"github.com/geodb-project/geodb/build"
	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/query"
)

// DB is an opened geodb database. See db.DB for its full surface.
type DB = db.DB

// Result is the outcome of a Lookup. See query.Result for its full surface.
type Result = query.Result

// Candidate is one matched place. See query.Candidate for its full surface.
type Candidate = query.Candidate

// Build assembles a geodb database from allArchivePath and altArchivePath
// and writes it to outDBPath, admitting only records whose population is
// at least minPop. See build.Run for the full set of build.Option tunables.
func Build(ctx context.Context, allArchivePath, altArchivePath, outDBPath string, minPop uint32, opts ...build.Option) error {
	return build.Run(ctx, allArchivePath, altArchivePath, outDBPath, minPop, opts...)
}

// Open memory-maps the database at path. The returned DB must be closed
// when no longer needed.
func Open(path string) (*DB, error) {
	return db.Open(path)
}

// Lookup resolves key against d and returns up to limit matching
// candidates in ascending-id order. limit == 0 means no cap. See
// query.Lookup for the full set of query.Option tunables.
func Lookup(ctx context.Context, d *DB, key string, limit int, opts ...query.Option) (Result, error) {
	return query.Lookup(ctx, d, key, limit, opts...)
}
