package db

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"
	"golang.org/x/exp/mmap"

	"github.com/geodb-project/geodb/internal/errs"
)

// DB is an opened, read-only geodb database. The file is memory-mapped at
// Open and read into one contiguous buffer exactly once; Postings and
// Records are sub-slices of that buffer, safe to read concurrently from any
// number of goroutines for the life of the process without further
// copying. The FST section is parsed once at Open into FST and reused by
// every subsequent lookup instead of being re-parsed per call.
type DB struct {
	ra *mmap.ReaderAt

	data []byte // whole-file contents, materialized once via ra.ReadAt

	fstBytes []byte // raw FST section, loaded into FST at Open and used to size later sections

	FST      *vellum.FST
	Postings []byte
	Records  []byte

	ids     []uint32
	recOffs []uint64
}

// Open memory-maps path, validates the header, and prepares the four
// sections for reading. The returned DB must be closed with Close when no
// longer needed.
func Open(path string) (*DB, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w: %w", path, errs.ErrIO, err)
	}

	n := ra.Len()
	if n < HeaderSize {
		ra.Close()
		return nil, fmt.Errorf("database %q shorter than header: %w", path, errs.ErrCorrupt)
	}

	data := make([]byte, n)
	if _, err := ra.ReadAt(data, 0); err != nil {
		ra.Close()
		return nil, fmt.Errorf("read database %q: %w: %w", path, errs.ErrIO, err)
	}

	d := &DB{ra: ra, data: data}
	if err := d.parseHeader(); err != nil {
		ra.Close()
		return nil, err
	}
	if err := d.parseOffsets(); err != nil {
		ra.Close()
		return nil, err
	}

	// An empty FST section (as produced by a database with no admitted
	// keys, or by a hand-built test fixture) is not valid vellum-encoded
	// data; treat it as "no keys" instead of handing it to vellum.Load.
	if len(d.fstBytes) > 0 {
		fst, err := vellum.Load(d.fstBytes)
		if err != nil {
			ra.Close()
			return nil, fmt.Errorf("load fst: %w: %w", errs.ErrCorrupt, err)
		}
		d.FST = fst
	}

	return d, nil
}

// FSTGet resolves key against the database's FST index, reusing the index
// parsed once at Open. A nil FST (an empty database) reports key as absent
// rather than erroring.
func (d *DB) FSTGet(key []byte) (uint64, bool, error) {
	if d.FST == nil {
		return 0, false, nil
	}
	return d.FST.Get(key)
}

func (d *DB) parseHeader() error {
	h := d.data[:HeaderSize]

	if string(h[offMagic:offMagic+7]) != string(Magic[:]) {
		return errs.ErrBadMagic
	}
	if v := binary.LittleEndian.Uint32(h[offVersion : offVersion+4]); v != Version {
		return fmt.Errorf("got version %d, want %d: %w", v, Version, errs.ErrBadVersion)
	}

	fstLen := binary.LittleEndian.Uint64(h[offFSTLen : offFSTLen+8])
	postingsLen := binary.LittleEndian.Uint64(h[offPostingsLen : offPostingsLen+8])
	recordsLen := binary.LittleEndian.Uint64(h[offRecordsLen : offRecordsLen+8])
	offsetsLen := binary.LittleEndian.Uint64(h[offOffsetsLen : offOffsetsLen+8])

	total := uint64(HeaderSize) + fstLen + postingsLen + recordsLen + offsetsLen
	if total != uint64(len(d.data)) {
		return fmt.Errorf("header section lengths sum to %d, file is %d bytes: %w", total, len(d.data), errs.ErrCorrupt)
	}

	off := uint64(HeaderSize)
	d.fstBytes = d.data[off : off+fstLen]
	off += fstLen
	d.Postings = d.data[off : off+postingsLen]
	off += postingsLen
	d.Records = d.data[off : off+recordsLen]
	off += recordsLen
	// the offsets table itself is parsed separately in parseOffsets.
	return nil
}

func (d *DB) offsetsSection() []byte {
	off := uint64(HeaderSize) + uint64(len(d.fstBytes)) + uint64(len(d.Postings)) + uint64(len(d.Records))
	return d.data[off:]
}

func (d *DB) parseOffsets() error {
	sec := d.offsetsSection()
	if len(sec) < 4 {
		return fmt.Errorf("offsets table truncated: %w", errs.ErrCorrupt)
	}
	n := binary.LittleEndian.Uint32(sec[:4])
	sec = sec[4:]

	want := int(n)*4 + int(n)*8
	if len(sec) != want {
		return fmt.Errorf("offsets table has %d entries but %d bytes remain: %w", n, len(sec), errs.ErrCorrupt)
	}

	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = binary.LittleEndian.Uint32(sec[i*4:])
	}
	recOffs := make([]uint64, n)
	base := int(n) * 4
	for i := range recOffs {
		recOffs[i] = binary.LittleEndian.Uint64(sec[base+i*8:])
	}

	d.ids = ids
	d.recOffs = recOffs
	return nil
}

// RecordOffset returns the byte offset into Records at which id's record
// begins, and whether id is present in the offsets table.
func (d *DB) RecordOffset(id uint32) (uint64, bool) {
	i := sort.Search(len(d.ids), func(i int) bool { return d.ids[i] >= id })
	if i == len(d.ids) || d.ids[i] != id {
		return 0, false
	}
	return d.recOffs[i], true
}

// Close unmaps the underlying file and releases the cached FST.
func (d *DB) Close() error {
	var fstErr error
	if d.FST != nil {
		fstErr = d.FST.Close()
	}
	if err := d.ra.Close(); err != nil {
		return err
	}
	return fstErr
}
