// Package archive streams a single named member out of a ZIP archive
// without ever extracting it to disk.
//
// GeoNames ships allCountries.txt and alternateNamesV2.txt as standard
// deflate-compressed ZIPs; this package registers klauspost/compress's
// flate implementation as the package-level deflate decompressor, a
// drop-in throughput win over the stdlib implementation for archives this
// large, with zero effect on the bytes produced.
package archive

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"sync"

	kflate "github.com/klauspost/compress/flate"

	"github.com/geodb-project/geodb/internal/errs"
)

// ReadBufferSize is the buffered-reader size placed in front of each member
// stream, chosen to amortize decompression overhead over large reads.
const ReadBufferSize = 8 * 1024 * 1024 // 8 MiB

var registerFastDeflateOnce sync.Once

func registerFastDeflate() {
	registerFastDeflateOnce.Do(func() {
		zip.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
			return kflate.NewReader(r)
		})
	})
}

// WithMember opens zipPath, locates memberName within it, and invokes fn
// with a buffered reader over that member's decompressed contents. The
// member stream is closed before WithMember returns, regardless of fn's
// outcome.
//
// Any failure to open the archive or locate the member is wrapped in
// errs.ErrArchiveStructure (or errs.ErrIO for the initial file open); fn's
// own error is returned unwrapped.
func WithMember(zipPath, memberName string, fn func(r io.Reader) error) error {
	registerFastDeflate()

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open zip %q: %w: %w", zipPath, errs.ErrIO, err)
	}
	defer zr.Close()

	var member *zip.File
	for _, f := range zr.File {
		if f.Name == memberName {
			member = f
			break
		}
	}
	if member == nil {
		return fmt.Errorf("member %q not found in %q: %w", memberName, zipPath, errs.ErrArchiveStructure)
	}

	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %q in %q: %w: %w", memberName, zipPath, errs.ErrArchiveStructure, err)
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, ReadBufferSize)
	return fn(br)
}
