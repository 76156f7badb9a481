// Package errs defines the sentinel errors shared across geodb's build and
// query paths.
//
// Callers should compare against these with errors.Is; errors raised by
// geodb's own checks wrap one of these sentinels with additional context via
// fmt.Errorf's %w verb. Some errors from other sources (context
// cancellation, the FST builder, a digest read-back, file sync, a
// WithMember callback) are returned or wrapped without a sentinel.
package errs

import "errors"

var (
	// ErrIO marks a failure to open or read an archive, database, or output path.
	ErrIO = errors.New("geodb: i/o failure")

	// ErrArchiveStructure marks a corrupt archive or a missing named member.
	ErrArchiveStructure = errors.New("geodb: archive structure")

	// ErrEmptyAfterFilter marks a build whose allCountries pass admitted zero records.
	ErrEmptyAfterFilter = errors.New("geodb: no records admitted (min_pop too high?)")

	// ErrBadMagic marks a file whose leading bytes are not the GEODB1 magic.
	ErrBadMagic = errors.New("geodb: bad magic")

	// ErrBadVersion marks a file whose version does not match the reader's VERSION.
	ErrBadVersion = errors.New("geodb: unsupported version")

	// ErrCorrupt marks inconsistent section lengths, out-of-bounds offsets,
	// a malformed varint, or a stored string that is not valid UTF-8.
	ErrCorrupt = errors.New("geodb: corrupt database")

	// ErrMalformedVarint marks a varint whose continuation bits run past the
	// 5-byte bound for a 32-bit value, or whose buffer ends mid-varint.
	ErrMalformedVarint = errors.New("geodb: malformed varint")
)
