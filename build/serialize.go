package build

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/blevesearch/vellum"

	"github.com/geodb-project/geodb/db"
	"github.com/geodb-project/geodb/geo"
	"github.com/geodb-project/geodb/internal/errs"
	"github.com/geodb-project/geodb/internal/pool"
	"github.com/geodb-project/geodb/internal/varint"
	"github.com/geodb-project/geodb/progress"
)

// serialize writes the four geodb sections and header to outPath, given the
// finalized (sorted, deduplicated) posting entries and the admitted
// records, keyed by id for offsets-table construction.
//
// entries must already be sorted lexicographically by key (postingMap.finalize
// guarantees this) since vellum.Builder.Insert requires strictly-ascending
// key input and fails the build otherwise — a useful sanity check on the
// prior phase's sort.
func serialize(entries []finalizedEntry, records []geo.Record, outPath string, reporter *progress.Reporter) error {
	postingsBuf := pool.GetPostingsBuffer()
	defer pool.PutPostingsBuffer(postingsBuf)

	fstBuf := pool.GetPostingsBuffer()
	defer pool.PutPostingsBuffer(fstBuf)

	builder, err := vellum.New(fstBuf, nil)
	if err != nil {
		return fmt.Errorf("create fst builder: %w", err)
	}

	for i, e := range entries {
		encoded := varint.EncodeDeltaVarints(e.ids)

		recOffset := uint64(postingsBuf.Len())
		postingsBuf.MustWrite(varint.AppendVarUint32(nil, uint32(len(encoded))))
		postingsBuf.MustWrite(encoded)

		if err := builder.Insert([]byte(e.key), recOffset); err != nil {
			return fmt.Errorf("insert fst key %q: %w", e.key, err)
		}

		if reporter != nil {
			reporter.Tick(uint64(i+1), e.key)
		}
	}
	if err := builder.Close(); err != nil {
		return fmt.Errorf("close fst builder: %w", err)
	}
	if reporter != nil {
		reporter.Done(uint64(len(entries)), "")
	}

	recordsBuf := pool.GetRecordsBuffer()
	defer pool.PutRecordsBuffer(recordsBuf)

	sorted := make([]geo.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	ids := make([]uint32, len(sorted))
	recOffs := make([]uint64, len(sorted))
	for i, r := range sorted {
		ids[i] = r.ID
		recOffs[i] = uint64(recordsBuf.Len())
		recordsBuf.B = geo.EncodeRecord(recordsBuf.B, r)
	}

	offsetsBuf := buildOffsetsTable(ids, recOffs)

	return writeFile(outPath, fstBuf.Bytes(), postingsBuf.Bytes(), recordsBuf.Bytes(), offsetsBuf)
}

func buildOffsetsTable(ids []uint32, recOffs []uint64) []byte {
	out := make([]byte, 0, 4+len(ids)*4+len(recOffs)*8)
	var nBuf [4]byte
	binary.LittleEndian.PutUint32(nBuf[:], uint32(len(ids)))
	out = append(out, nBuf[:]...)
	for _, id := range ids {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], id)
		out = append(out, b[:]...)
	}
	for _, o := range recOffs {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], o)
		out = append(out, b[:]...)
	}
	return out
}

func writeFile(outPath string, fst, postings, records, offsets []byte) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %q: %w: %w", outPath, errs.ErrIO, err)
	}
	defer f.Close()

	var header [db.HeaderSize]byte
	copy(header[0:7], db.Magic[:])
	binary.LittleEndian.PutUint32(header[7:11], db.Version)
	binary.LittleEndian.PutUint64(header[11:19], uint64(len(fst)))
	binary.LittleEndian.PutUint64(header[19:27], uint64(len(postings)))
	binary.LittleEndian.PutUint64(header[27:35], uint64(len(records)))
	binary.LittleEndian.PutUint64(header[35:43], uint64(len(offsets)))

	for _, chunk := range [][]byte{header[:], fst, postings, records, offsets} {
		if _, err := f.Write(chunk); err != nil {
			return fmt.Errorf("write %q: %w: %w", outPath, errs.ErrIO, err)
		}
	}
	return f.Sync()
}
