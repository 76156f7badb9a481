// Package build assembles a geodb database file from the two GeoNames
// archive members: a chunked, bounded-parallel TSV parse followed by a
// single-threaded posting-map merge and a serialize pass.
package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/geodb-project/geodb/geo"
	"github.com/geodb-project/geodb/internal/archive"
	"github.com/geodb-project/geodb/internal/errs"
)

const (
	allCountriesMember = "allCountries.txt"
	altNamesMember     = "alternateNamesV2.txt"
)

// Run builds a geodb database from allArchivePath (must contain
// allCountries.txt) and altArchivePath (must contain
// alternateNamesV2.txt), admitting only records whose population is at
// least minPop, and writes the result to outDBPath.
//
// Run fails fast on the first fatal error (archive, I/O, or an empty
// admitted set); individual malformed TSV lines are dropped silently, not
// treated as failures.
func Run(ctx context.Context, allArchivePath, altArchivePath, outDBPath string, minPop uint32, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	records, err := parseAllCountries(ctx, allArchivePath, minPop, cfg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errs.ErrEmptyAfterFilter
	}

	idPresent := make(map[uint32]struct{}, len(records))
	for _, r := range records {
		idPresent[r.ID] = struct{}{}
	}

	pm := newPostingMap(len(records) * 2)
	seedReporter := cfg.newReporter("seed")
	for i, r := range records {
		pm.add(r.Name, r.ID)
		pm.add(r.AsciiName, r.ID)
		seedReporter.Tick(uint64(i+1), r.Name)
	}
	seedReporter.Done(uint64(len(records)), "")

	if err := mergeAltNames(ctx, altArchivePath, idPresent, pm, cfg); err != nil {
		return err
	}

	entries := pm.finalize()

	serializeReporter := cfg.newReporter("serialize")
	if err := serialize(entries, records, outDBPath, serializeReporter); err != nil {
		return err
	}

	digest, err := hashFile(outDBPath)
	if err != nil {
		return fmt.Errorf("digest %q: %w", outDBPath, err)
	}
	cfg.newReporter("write-db").Done(uint64(len(entries)), fmt.Sprintf("xxhash64=%016x", digest))

	return nil
}

// parseAllCountries runs build phase 1: open allCountries.txt from
// allArchivePath and parse it in chunks of up to cfg.chunkSize lines, each
// chunk itself parsed across a bounded worker pool, preserving file order
// across chunk boundaries.
func parseAllCountries(ctx context.Context, allArchivePath string, minPop uint32, cfg *config) ([]geo.Record, error) {
	var records []geo.Record
	reporter := cfg.newReporter("parse-all")

	err := archive.WithMember(allArchivePath, allCountriesMember, func(r io.Reader) error {
		return chunkLines(r, cfg.chunkSize, func(lines []string) error {
			admitted, err := parseAllCountriesChunk(ctx, lines, minPop, cfg.workers)
			if err != nil {
				return err
			}
			records = append(records, admitted...)
			reporter.Tick(uint64(len(records)), "")
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	reporter.Done(uint64(len(records)), "")
	return records, nil
}

// mergeAltNames runs build phase 4: open alternateNamesV2.txt and merge
// every admitted (key, id) pair into pm.
func mergeAltNames(ctx context.Context, altArchivePath string, idPresent map[uint32]struct{}, pm *postingMap, cfg *config) error {
	reporter := cfg.newReporter("merge-alt")
	var total uint64

	err := archive.WithMember(altArchivePath, altNamesMember, func(r io.Reader) error {
		return chunkLines(r, cfg.chunkSize, func(lines []string) error {
			pairs, err := parseAltNamesChunk(ctx, lines, idPresent, cfg.workers)
			if err != nil {
				return err
			}
			for _, p := range pairs {
				pm.add(p.altName, p.geonameID)
			}
			total += uint64(len(pairs))
			reporter.Tick(total, "")
			return nil
		})
	})
	if err != nil {
		return err
	}
	reporter.Done(total, "")
	return nil
}

// hashFile returns the xxhash64 digest of path's contents, read back after
// serialize has written and synced it.
func hashFile(path string) (uint64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(string(b)), nil
}
